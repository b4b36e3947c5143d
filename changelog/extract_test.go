package changelog

import (
	"testing"

	"github.com/jeffrom/chlog/model"
)

func commits(msgs ...string) []*model.Commit {
	cs := make([]*model.Commit, len(msgs))
	for i, msg := range msgs {
		cs[i] = &model.Commit{Hash: "deadbeef", Message: msg}
	}
	return cs
}

func TestExtract(t *testing.T) {
	tcs := []struct {
		name   string
		msg    string
		prev   string
		noPrev bool
		expect string
		ok     bool
	}{
		{name: "basic", msg: `Resolve "Fix login"`, prev: "Fixed auth !42", expect: "Fix login !42", ok: true},
		{name: "first-reference", msg: `Resolve "Added thing"`, prev: "see !3 and !4", expect: "Added thing !3", ok: true},
		{name: "quotes", msg: `Resolve "Added "quoted" thing"`, prev: "!1", expect: `Added "quoted" thing !1`, ok: true},
		{name: "no-prev", msg: `Resolve "Fix login"`, noPrev: true},
		{name: "prev-no-ref", msg: `Resolve "Fix login"`, prev: "Merge branch 'x'"},
		{name: "own-ref-ignored", msg: `Resolve "Fix login !9"`, prev: "Merge branch 'x'"},
		{name: "not-resolve", msg: "Fixed auth !42", prev: "Merge !43"},
		{name: "lowercase", msg: `resolve "Fix login"`, prev: "!42"},
		{name: "trailing", msg: `Resolve "Fix login" again`, prev: "!42"},
		{name: "empty-description", msg: `Resolve ""`, prev: "!42"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			c := &model.Commit{Hash: "deadbeef", Message: tc.msg}
			var prev *model.Commit
			if !tc.noPrev {
				prev = &model.Commit{Hash: "cafebabe", Message: tc.prev}
			}
			e, ok := Extract(c, prev)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v (%+v)", tc.ok, ok, e)
			}
			if ok && e.String() != tc.expect {
				t.Errorf("expected %q, got %q", tc.expect, e.String())
			}
		})
	}
}

func TestExtractAll(t *testing.T) {
	// newest first
	cs := commits(
		`Resolve "Added dashboard"`,
		"Merge branch 'fix' into 'main' !8",
		`Resolve "Fixed crash"`,
		"Merge branch 'feat' into 'main' !5",
		`Resolve "Updated docs"`,
	)
	entries := ExtractAll(cs)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if s := entries[0].String(); s != "Fixed crash !8" {
		t.Errorf("expected %q, got %q", "Fixed crash !8", s)
	}
	if s := entries[1].String(); s != "Updated docs !5" {
		t.Errorf("expected %q, got %q", "Updated docs !5", s)
	}
}

func TestExtractMergeBeforeResolve(t *testing.T) {
	// the commit carrying the reference is newer, so it's logged first.
	cs := commits("Fixed auth !42", `Resolve "Fix login"`)
	entries := ExtractAll(cs)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %+v", entries)
	}
	if s := entries[0].String(); s != "Fix login !42" {
		t.Fatalf("expected %q, got %q", "Fix login !42", s)
	}

	// reversed, the Resolve commit has nothing before it.
	cs = commits(`Resolve "Fix login"`, "Fixed auth !42")
	if entries := ExtractAll(cs); len(entries) != 0 {
		t.Fatalf("expected no entries, got %+v", entries)
	}
}

func TestReference(t *testing.T) {
	tcs := []struct {
		s      string
		expect int
		ok     bool
	}{
		{s: "!42", expect: 42, ok: true},
		{s: "group/project!7 and !8", expect: 7, ok: true},
		{s: "no reference", ok: false},
		{s: "!", ok: false},
		{s: "!99999999999999999999999", ok: false},
	}
	for _, tc := range tcs {
		n, ok := Reference(tc.s)
		if ok != tc.ok || n != tc.expect {
			t.Errorf("Reference(%q): expected %d,%v got %d,%v", tc.s, tc.expect, tc.ok, n, ok)
		}
	}
}
