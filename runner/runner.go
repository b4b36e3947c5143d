// Package runner manages command-line execution
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/jeffrom/chlog/changelog"
	"github.com/jeffrom/chlog/config"
	"github.com/jeffrom/chlog/model"
	"github.com/jeffrom/chlog/vcs"
)

type Runner struct {
	cfg    config.Config
	vcs    vcs.Interface
	fs     afero.Fs
	writer *changelog.Writer
}

// New returns a runner writing through fs. In dry-run mode writes land in
// memory on top of fs, and Preview shows the result.
func New(cfg config.Config, vcs vcs.Interface, fs afero.Fs) *Runner {
	var rep changelog.Reporter = cfg
	if cfg.Dryrun {
		fs = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(fs), afero.NewMemMapFs())
		rep = dryrunReporter{cfg}
	}
	return &Runner{
		cfg:    cfg,
		vcs:    vcs,
		fs:     fs,
		writer: changelog.NewWriter(fs, rep),
	}
}

// Writer returns the document writer, mostly so tests can fix its clock.
func (r *Runner) Writer() *changelog.Writer { return r.writer }

// ResolveVersion returns the label for untagged changes.
func (r *Runner) ResolveVersion() (string, error) {
	proj, err := config.ReadProject(r.fs, r.cfg.ProjectPath())
	if err != nil {
		return "", err
	}
	if proj != nil && proj.Version != "" {
		r.cfg.Debugf("project version from %s: %s", r.cfg.ProjectPath(), proj.Version)
	}
	return r.cfg.ResolveVersion(proj), nil
}

// Changelogs writes one section per resolved range. A repository without
// commits is not an error: nothing is written.
func (r *Runner) Changelogs(ctx context.Context, req changelog.Request) (*Stats, error) {
	stats := NewStats()
	tags := r.readTags(ctx)

	first, err := r.vcs.FirstCommit(ctx)
	if err != nil || first == "" {
		var nf vcs.NotFoundError
		if errors.As(err, &nf) {
			r.cfg.Debugf("first commit: no history at %s", nf.Ref)
		} else if err != nil {
			r.cfg.Debugf("first commit: %v", err)
		}
		r.cfg.Errorf("First commit not found")
		return stats, nil
	}
	r.cfg.Debugf("first commit: %s", first)

	if req.Version == "" {
		req.Version, err = r.ResolveVersion()
		if err != nil {
			return nil, err
		}
	}

	path := r.cfg.OutputPath()
	for _, rg := range changelog.Resolve(req, tags, first) {
		commits := r.readCommits(ctx, rg.Start, rg.End)
		b, err := r.writer.Write(path, commits, rg.Label, rg.Date)
		if err != nil {
			return nil, fmt.Errorf("runner: write %s: %w", path, err)
		}
		stats.AddBlock(b, len(commits))
	}
	return stats, nil
}

// Preview writes the current changelog document to w.
func (r *Runner) Preview(w io.Writer) error {
	b, err := afero.ReadFile(r.fs, r.cfg.OutputPath())
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func (r *Runner) readTags(ctx context.Context) []*model.Tag {
	raw, err := r.vcs.TagLog(ctx)
	if err != nil {
		r.cfg.Warnf("reading tags failed: %v", err)
	}
	r.cfg.Debugf("tags: %q", lines(raw))

	tags := changelog.ParseTags(raw)
	if len(tags) == 0 {
		r.cfg.Warnf("No tags found")
		return nil
	}
	for _, tag := range tags {
		r.cfg.Debugf("tag %s (%s) at %s", tag.Name, tag.Date.Format(vcs.ShortDate), tag.Hash)
		if _, err := tag.Semver(); err != nil {
			r.cfg.Warnf("tag %s is not a semantic version: %v", tag.Name, err)
		}
	}
	return tags
}

func (r *Runner) readCommits(ctx context.Context, start, end string) []*model.Commit {
	spec := vcs.RangeSpec(start, end)
	raw, err := r.vcs.CommitLog(ctx, start, end)
	if err != nil {
		r.cfg.Warnf("reading commits %s failed: %v", spec, err)
	}
	r.cfg.Debugf("commits %s: %q", spec, lines(raw))

	commits := changelog.ParseCommits(raw)
	if len(commits) == 0 {
		r.cfg.Warnf("No commits found in %s", spec)
	}
	for _, c := range commits {
		r.cfg.Debugf("commit %s: %s", c.ShortID(), c.Message)
	}
	return commits
}

func lines(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

type dryrunReporter struct {
	config.Config
}

func (d dryrunReporter) Updated(name, version string) {
	d.Config.Printf("%s updated (%s) (dryrun)", name, version)
}
