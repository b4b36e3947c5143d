// Package vcs abstracts version control history. The core only consumes the
// raw text a provider returns, so any backend that can render the same line
// shapes can be swapped in.
package vcs

import (
	"context"
	"fmt"
	"time"
)

// Head is the symbolic ref for the current commit.
const Head = "HEAD"

// ShortDate is the layout of dates in tag log lines, as printed by
// "git log --date=short".
const ShortDate = "2006-01-02"

// ParseShortDate parses a date printed with --date=short.
func ParseShortDate(s string) (time.Time, error) {
	return time.Parse(ShortDate, s)
}

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

// Interface is a history provider.
//
// TagLog returns one line per tagged commit, newest first, shaped like
// "<abbrev hash> <YYYY-MM-DD>  (tag: <name>[, ...])".
//
// CommitLog returns one line per commit in start..end, newest first, shaped
// like "<hash> <subject>". An empty start lists all history reachable from
// end, and an empty end means HEAD.
//
// FirstCommit returns the hash of the repository's root commit.
type Interface interface {
	TagLog(ctx context.Context) (string, error)
	CommitLog(ctx context.Context, start, end string) (string, error)
	FirstCommit(ctx context.Context) (string, error)
}

// RangeSpec renders start..end the way git does. An empty end is HEAD.
func RangeSpec(start, end string) string {
	if end == "" {
		end = Head
	}
	if start == "" {
		return end
	}
	return start + ".." + end
}
