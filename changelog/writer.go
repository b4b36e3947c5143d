package changelog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/jeffrom/chlog/model"
)

// DateFormat is the layout of section heading dates (DD/MM/YYYY).
const DateFormat = "02/01/2006"

// Reporter receives the writer's progress. config.Config implements it.
type Reporter interface {
	Debugf(msg string, args ...interface{})
	Updated(name, version string)
}

// Block is one changelog section.
type Block struct {
	Version string
	Date    time.Time
	Lines   []string
}

// NewBlock extracts entries from newest-first commits and sorts them.
func NewBlock(commits []*model.Commit, version string, date time.Time) Block {
	entries := ExtractAll(commits)
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = "- " + e.String()
	}
	return Block{Version: version, Date: date, Lines: Sort(lines)}
}

// Label is the version as displayed: a leading "dev" becomes "v".
func (b Block) Label() string {
	return strings.Replace(b.Version, "dev", "v", 1)
}

func (b Block) Heading() string {
	return "### " + b.Label() + " (" + b.Date.Format(DateFormat) + ")"
}

// Render returns the section followed by existing.
func Render(b Block, existing []byte) []byte {
	var sb strings.Builder
	sb.WriteString(b.Heading())
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(b.Lines, "\n"))
	sb.WriteString("\n\n")
	sb.Write(existing)
	return []byte(sb.String())
}

// Writer prepends sections to a changelog document.
type Writer struct {
	fs       afero.Fs
	reporter Reporter
	Now      func() time.Time
}

func NewWriter(fs afero.Fs, reporter Reporter) *Writer {
	return &Writer{fs: fs, reporter: reporter, Now: time.Now}
}

// Write prepends the section for commits to the document at path. The whole
// file is rewritten. A zero date is replaced by the current time.
func (w *Writer) Write(path string, commits []*model.Commit, version string, date time.Time) (Block, error) {
	existing, err := w.read(path)
	if err != nil {
		return Block{}, err
	}

	if date.IsZero() {
		date = w.Now()
	}
	b := NewBlock(commits, version, date)
	w.reporter.Debugf("%s: %d entries from %d commits", b.Label(), len(b.Lines), len(commits))

	if err := afero.WriteFile(w.fs, path, Render(b, existing), 0644); err != nil {
		return Block{}, err
	}
	w.reporter.Updated(filepath.Base(path), b.Label())
	return b, nil
}

func (w *Writer) read(path string) ([]byte, error) {
	b, err := afero.ReadFile(w.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}
