package changelog

import (
	"time"

	"github.com/jeffrom/chlog/model"
	"github.com/jeffrom/chlog/vcs"
)

// Request selects which history to write.
type Request struct {
	All     bool
	From    string
	To      string
	Version string
}

// Range is a span of history written as one changelog section. A zero Date
// means the section is dated when it's written.
type Range struct {
	Start string
	End   string
	Label string
	Date  time.Time
}

// Resolve computes the ranges for req. tags must be oldest first. Without a
// first commit there is no history, and no ranges are returned.
func Resolve(req Request, tags []*model.Tag, firstCommit string) []Range {
	if firstCommit == "" {
		return nil
	}

	newest := firstCommit
	if len(tags) > 0 {
		newest = tags[len(tags)-1].Name
	}

	if req.All {
		ranges := make([]Range, 0, len(tags)+1)
		for i, tag := range tags {
			start := firstCommit
			if i > 0 {
				start = tags[i-1].Name
			}
			ranges = append(ranges, Range{Start: start, End: tag.Name, Label: tag.Name, Date: tag.Date})
		}
		// without tags the whole history is listed, root commit included
		start := ""
		if len(tags) > 0 {
			start = newest
		}
		return append(ranges, Range{Start: start, End: vcs.Head, Label: req.Version})
	}

	if req.From != "" {
		end := req.To
		if end == "" {
			end = vcs.Head
		}
		return []Range{{Start: req.From, End: end, Label: req.Version}}
	}

	return []Range{{Start: newest, End: vcs.Head, Label: req.Version}}
}
