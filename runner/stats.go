package runner

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeffrom/chlog/changelog"
)

// Stats summarizes one run.
type Stats struct {
	Sections int64
	Commits  int64
	Entries  int64
	Counts   map[string][]*statCount
}

func NewStats() *Stats {
	return &Stats{Counts: make(map[string][]*statCount)}
}

func (s *Stats) Add(bucket, name string, n int64) {
	counts := s.Counts[bucket]
	count, found := s.findCount(name, counts)
	if !found {
		counts = append(counts, count)
	}
	count.Add(n)

	s.Counts[bucket] = counts
}

// AddBlock records a written section built from n commits.
func (s *Stats) AddBlock(b changelog.Block, n int) {
	s.Sections++
	s.Commits += int64(n)
	s.Entries += int64(len(b.Lines))
	s.Add("section", b.Label(), int64(len(b.Lines)))
	for _, line := range b.Lines {
		s.Add("category", changelog.Classify(line).String(), 1)
	}
}

// Count returns the count for name in bucket.
func (s *Stats) Count(bucket, name string) int64 {
	count, found := s.findCount(name, s.Counts[bucket])
	if !found {
		return 0
	}
	return count.n
}

func (s *Stats) findCount(name string, counts []*statCount) (*statCount, bool) {
	for _, c := range counts {
		if c.label == name {
			return c, true
		}
	}
	return &statCount{label: name}, false
}

func (s *Stats) sortedBuckets() []string {
	buckets := make([]string, len(s.Counts))
	i := 0
	for name := range s.Counts {
		buckets[i] = name
		i++
	}
	sort.Strings(buckets)
	return buckets
}

type statCount struct {
	label string
	n     int64
}

func (c *statCount) Add(n int64) {
	c.n += n
}

func (s *Stats) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fmt.Sprintf("%d sections, %d commits, %d entries\n\n", s.Sections, s.Commits, s.Entries))

	buckets := s.sortedBuckets()
	for _, name := range buckets {
		counts := s.Counts[name]
		sort.SliceStable(counts, func(i, j int) bool {
			return counts[i].n > counts[j].n
		})
		bw.WriteString(fmt.Sprintf("%s:\n", toTitle(name)))
		for _, count := range counts {
			label := count.label
			if label == "" {
				label = "n/a"
			}
			bw.WriteString(fmt.Sprintf("  %20s\t\t%d\n", label, count.n))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

var nonAlphaRE = regexp.MustCompile(`[^A-Za-z]`)

func toTitle(s string) string {
	s = nonAlphaRE.ReplaceAllLiteralString(s, " ")
	return cases.Title(language.English).String(s)
}
