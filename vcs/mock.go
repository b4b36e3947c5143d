package vcs

import (
	"context"
	"strings"
)

// Mock is a history provider that returns canned text.
type Mock struct {
	tagLog      string
	tagErr      error
	firstCommit string
	commitLogs  map[string]string
	commitErrs  map[string]error
	queries     []string
}

func NewMock() *Mock {
	return &Mock{
		commitLogs: make(map[string]string),
		commitErrs: make(map[string]error),
	}
}

func (m *Mock) SetTagLog(lines ...string) *Mock {
	m.tagLog = strings.Join(lines, "\n")
	return m
}

func (m *Mock) SetTagErr(err error) *Mock {
	m.tagErr = err
	return m
}

func (m *Mock) SetFirstCommit(hash string) *Mock {
	m.firstCommit = hash
	return m
}

// SetCommitLog sets the lines returned for start..end.
func (m *Mock) SetCommitLog(start, end string, lines ...string) *Mock {
	m.commitLogs[RangeSpec(start, end)] = strings.Join(lines, "\n")
	return m
}

func (m *Mock) SetCommitErr(start, end string, err error) *Mock {
	m.commitErrs[RangeSpec(start, end)] = err
	return m
}

// Queries returns the commit ranges requested so far, in order.
func (m *Mock) Queries() []string {
	return m.queries
}

func (m *Mock) TagLog(ctx context.Context) (string, error) {
	if m.tagErr != nil {
		return "", m.tagErr
	}
	return m.tagLog, nil
}

func (m *Mock) CommitLog(ctx context.Context, start, end string) (string, error) {
	spec := RangeSpec(start, end)
	m.queries = append(m.queries, spec)
	if err := m.commitErrs[spec]; err != nil {
		return "", err
	}
	return m.commitLogs[spec], nil
}

func (m *Mock) FirstCommit(ctx context.Context) (string, error) {
	if m.firstCommit == "" {
		return "", NotFoundError{Ref: Head}
	}
	return m.firstCommit, nil
}
