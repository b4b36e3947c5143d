// Package gogit implements vcs.Interface on top of go-git, so chlog can read
// history without a git binary. It renders the same line shapes as the git
// commandline provider.
package gogit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/jeffrom/chlog/config"
	"github.com/jeffrom/chlog/vcs"
)

// abbrevLen matches git's default short hash length for small repositories.
const abbrevLen = 7

type Repo struct {
	cfg  config.Config
	repo *git.Repository
}

// Open opens the repository containing wd.
func Open(cfg config.Config, wd string) (*Repo, error) {
	if wd == "" {
		wd = "."
	}
	repo, err := git.PlainOpenWithOptions(wd, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("gogit: open %s: %w", wd, err)
	}
	return New(cfg, repo), nil
}

func New(cfg config.Config, repo *git.Repository) *Repo {
	return &Repo{cfg: cfg, repo: repo}
}

type taggedCommit struct {
	commit *object.Commit
	names  []string
	// reach counts the commits reachable from commit. It's only computed
	// when another tagged commit has the same committer time.
	reach int
}

func (r *Repo) TagLog(ctx context.Context) (string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return "", err
	}
	byHash := make(map[plumbing.Hash]*taggedCommit)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := r.peel(ref.Hash())
		if err != nil {
			r.cfg.Debugf("gogit: skipping tag %s: %v", ref.Name().Short(), err)
			return nil
		}
		tc, ok := byHash[c.Hash]
		if !ok {
			tc = &taggedCommit{commit: c}
			byHash[c.Hash] = tc
		}
		tc.names = append(tc.names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return "", err
	}

	tagged := make([]*taggedCommit, 0, len(byHash))
	sameTime := make(map[int64]int)
	for _, tc := range byHash {
		sort.Strings(tc.names)
		tagged = append(tagged, tc)
		sameTime[tc.commit.Committer.When.Unix()]++
	}
	for _, tc := range tagged {
		if sameTime[tc.commit.Committer.When.Unix()] < 2 {
			continue
		}
		if tc.reach, err = r.count(ctx, tc.commit.Hash); err != nil {
			return "", err
		}
	}

	// newest first. A descendant reaches more commits than its ancestors, so
	// ties on committer time keep children before parents, like git log.
	sort.Slice(tagged, func(i, j int) bool {
		a, b := tagged[i], tagged[j]
		at, bt := a.commit.Committer.When.Unix(), b.commit.Committer.When.Unix()
		if at != bt {
			return at > bt
		}
		if a.reach != b.reach {
			return a.reach > b.reach
		}
		return a.commit.Hash.String() < b.commit.Hash.String()
	})

	lines := make([]string, len(tagged))
	for i, tc := range tagged {
		decorations := make([]string, len(tc.names))
		for j, name := range tc.names {
			decorations[j] = "tag: " + name
		}
		lines[i] = fmt.Sprintf("%s %s  (%s)",
			tc.commit.Hash.String()[:abbrevLen],
			tc.commit.Author.When.Format(vcs.ShortDate),
			strings.Join(decorations, ", "))
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Repo) CommitLog(ctx context.Context, start, end string) (string, error) {
	if end == "" {
		end = vcs.Head
	}
	endHash, err := r.resolve(end)
	if err != nil {
		return "", err
	}

	exclude := make(map[plumbing.Hash]bool)
	if start != "" {
		startHash, err := r.resolve(start)
		if err != nil {
			return "", err
		}
		if err := r.walk(ctx, startHash, func(c *object.Commit) error {
			exclude[c.Hash] = true
			return nil
		}); err != nil {
			return "", err
		}
	}

	var lines []string
	err = r.walk(ctx, endHash, func(c *object.Commit) error {
		if exclude[c.Hash] {
			return nil
		}
		lines = append(lines, c.Hash.String()+" "+subject(c.Message))
		return nil
	})
	if err != nil {
		return "", err
	}
	r.cfg.Debugf("gogit: %d commits in %s", len(lines), vcs.RangeSpec(start, end))
	return strings.Join(lines, "\n"), nil
}

func (r *Repo) FirstCommit(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", vcs.NotFoundError{Ref: vcs.Head}
	}
	if err != nil {
		return "", fmt.Errorf("gogit: %w", err)
	}
	var first string
	err = r.walk(ctx, head.Hash(), func(c *object.Commit) error {
		if c.NumParents() == 0 {
			first = c.Hash.String()
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", vcs.NotFoundError{Ref: vcs.Head}
	}
	return first, nil
}

func (r *Repo) count(ctx context.Context, from plumbing.Hash) (int, error) {
	n := 0
	err := r.walk(ctx, from, func(c *object.Commit) error {
		n++
		return nil
	})
	return n, err
}

func (r *Repo) walk(ctx context.Context, from plumbing.Hash, fn func(c *object.Commit) error) error {
	iter, err := r.repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return err
	}
	defer iter.Close()
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(c)
	})
	if errors.Is(err, storer.ErrStop) {
		return nil
	}
	return err
}

// resolve turns a revision (hash, tag, branch, HEAD) into a commit hash,
// peeling annotated tags.
func (r *Repo) resolve(rev string) (plumbing.Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err == nil {
		c, err := r.peel(*h)
		if err == nil {
			return c.Hash, nil
		}
	}
	if ref, terr := r.repo.Tag(rev); terr == nil {
		c, err := r.peel(ref.Hash())
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return c.Hash, nil
	}
	return plumbing.ZeroHash, vcs.NotFoundError{Ref: rev}
}

func (r *Repo) peel(h plumbing.Hash) (*object.Commit, error) {
	if c, err := r.repo.CommitObject(h); err == nil {
		return c, nil
	}
	tag, err := r.repo.TagObject(h)
	if err != nil {
		return nil, err
	}
	return tag.Commit()
}

// subject is the first paragraph of a commit message joined into one line,
// like git's %s.
func subject(msg string) string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(msg), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, " ")
}
