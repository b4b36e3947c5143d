// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/jeffrom/chlog/config"
	"github.com/jeffrom/chlog/vcs"
)

// TagLogFormat renders "<abbrev hash> <short date> <decorations>".
const TagLogFormat = "format:%h %ad %d"

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

func (g *Git) TagLog(ctx context.Context) (string, error) {
	args := []string{
		"log", "--tags", "--simplify-by-decoration", "--date=short", "--pretty=" + TagLogFormat,
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (g *Git) CommitLog(ctx context.Context, start, end string) (string, error) {
	args := []string{"log", "--pretty=oneline"}
	if start != "" || end != "" {
		args = append(args, vcs.RangeSpec(start, end))
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (g *Git) FirstCommit(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-list", "--max-parents=0", vcs.Head})
	if err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			return s, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", vcs.NotFoundError{Ref: vcs.Head}
}
