package changelog

import (
	"strings"

	"github.com/jeffrom/chlog/model"
	"github.com/jeffrom/chlog/vcs"
)

// ParseTags reads a tag log (newest first) and returns release tags oldest
// first. Lines that don't match the tag pattern are dropped.
func ParseTags(raw string) []*model.Tag {
	var tags []*model.Tag
	for _, line := range splitLines(raw) {
		m := DefaultConvention.TagRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		date, err := vcs.ParseShortDate(m[2])
		if err != nil {
			continue
		}
		tags = append(tags, &model.Tag{Hash: m[1], Date: date, Name: m[3]})
	}

	for i, j := 0, len(tags)-1; i < j; i, j = i+1, j-1 {
		tags[i], tags[j] = tags[j], tags[i]
	}
	return tags
}

// ParseCommits reads a oneline commit log. Order is preserved, so the result
// is newest first.
func ParseCommits(raw string) []*model.Commit {
	var commits []*model.Commit
	for _, line := range splitLines(raw) {
		m := DefaultConvention.CommitRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		commits = append(commits, &model.Commit{Hash: m[1], Message: m[2]})
	}
	return commits
}

func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
