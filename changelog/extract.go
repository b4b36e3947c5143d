package changelog

import (
	"fmt"
	"strconv"

	"github.com/jeffrom/chlog/model"
)

type Entry struct {
	Description string
	Reference   int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s !%d", e.Description, e.Reference)
}

// Extract returns the entry for c. prev is the commit logged right before c,
// which is newer. Only prev is searched for the reference number: a Resolve
// commit without a following "!<number>" commit produces nothing.
func Extract(c, prev *model.Commit) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	m := DefaultConvention.ResolveRE.FindStringSubmatch(c.Message)
	if m == nil {
		return Entry{}, false
	}
	if prev == nil {
		return Entry{}, false
	}
	ref, ok := Reference(prev.Message)
	if !ok {
		return Entry{}, false
	}
	return Entry{Description: m[1], Reference: ref}, true
}

// ExtractAll runs Extract over a newest-first commit list.
func ExtractAll(commits []*model.Commit) []Entry {
	var entries []Entry
	for i, c := range commits {
		var prev *model.Commit
		if i > 0 {
			prev = commits[i-1]
		}
		if e, ok := Extract(c, prev); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// Reference returns the first "!<number>" in s.
func Reference(s string) (int, bool) {
	m := DefaultConvention.ReferenceRE.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
