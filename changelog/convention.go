package changelog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Convention holds the patterns chlog reads history with.
type Convention struct {
	Name        string
	TagRE       *regexp.Regexp
	CommitRE    *regexp.Regexp
	ResolveRE   *regexp.Regexp
	ReferenceRE *regexp.Regexp
}

// DefaultConvention matches dev-prefixed semver tags and GitLab-style
// "Resolve" commits followed by a merge commit carrying "!<number>".
var DefaultConvention = &Convention{
	Name:        "resolve-mr",
	TagRE:       regexp.MustCompile(`^([0-9a-f]+)\s+(\d{4}-\d{2}-\d{2})\s+\(.*tag:\s+(dev\d+\.\d+\.\d+).*\)$`),
	CommitRE:    regexp.MustCompile(`^\b([0-9a-f]{5,40})\b\s(.+)$`),
	ResolveRE:   regexp.MustCompile(`^Resolve "(.+?)"$`),
	ReferenceRE: regexp.MustCompile(`!(\d+)`),
}

const commitGuide = `Format: <Type>(<scope>): <message>

Type: capitalize the first letter
  - Add:      Add a new feature
  - Update:   Modify code without adding a new feature
  - Fix:      Fix a bug
  - Build:    Changes aimed at the build process
  - Docs:     Documentation changes only
  - Optz:     Improve performance
  - Chore:    Other changes that do not modify src or test files
  - Test:     Add missing test cases or update existing ones

Scope: the affected area of the commit (optional)
  - Name of the module, component, service, ...

Message: a brief description of the commit content

Examples:
  - Add(home): add home page
  - Update(header): update header component
  - Fix(auth): can't login
`

// TextSummary writes the commit format guide followed by the patterns
// changelog generation relies on.
func (c *Convention) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(commitGuide)
	bw.WriteString("\n")
	bw.WriteString(fmt.Sprintf("Changelog convention: %s\n", c.Name))
	bw.WriteString(fmt.Sprintf("  %-16s %s\n", "Release tags:", c.TagRE))
	bw.WriteString(fmt.Sprintf("  %-16s %s\n", "Entries:", c.ResolveRE))
	bw.WriteString(fmt.Sprintf("  %-16s %s (on the next commit)\n", "References:", c.ReferenceRE))

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.String()
	}
	bw.WriteString(fmt.Sprintf("  %-16s %s\n", "Categories:", strings.Join(names, ", ")))

	return bw.Flush()
}
