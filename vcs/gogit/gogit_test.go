package gogit

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffrom/chlog/changelog"
	"github.com/jeffrom/chlog/config"
	"github.com/jeffrom/chlog/vcs"
)

var epoch = time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)

type testRepo struct {
	t    *testing.T
	repo *git.Repository
	wt   *git.Worktree
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{t: t, repo: repo, wt: wt}
}

func (tr *testRepo) when() time.Time {
	return epoch.Add(time.Duration(tr.n) * 24 * time.Hour)
}

func (tr *testRepo) commit(msg string) plumbing.Hash {
	tr.t.Helper()
	tr.n++
	return tr.commitAt(msg, tr.when())
}

func (tr *testRepo) commitAt(msg string, when time.Time) plumbing.Hash {
	tr.t.Helper()
	sig := &object.Signature{Name: "chlog-test", Email: "chlog-test@example.com", When: when}
	h, err := tr.wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig, AllowEmptyCommits: true})
	require.NoError(tr.t, err)
	return h
}

func (tr *testRepo) tag(name string, h plumbing.Hash, annotated bool) {
	tr.t.Helper()
	var opts *git.CreateTagOptions
	if annotated {
		opts = &git.CreateTagOptions{
			Tagger:  &object.Signature{Name: "chlog-test", Email: "chlog-test@example.com", When: tr.when()},
			Message: name,
		}
	}
	_, err := tr.repo.CreateTag(name, h, opts)
	require.NoError(tr.t, err)
}

func newTestConfig() config.Config {
	tio := config.TerminalIO{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	return config.NewWithTerminalIO(nil, &tio)
}

func TestFirstCommitEmptyRepo(t *testing.T) {
	tr := newTestRepo(t)
	r := New(newTestConfig(), tr.repo)

	_, err := r.FirstCommit(context.Background())
	var nf vcs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, vcs.Head, nf.Ref)
}

func TestFirstCommit(t *testing.T) {
	tr := newTestRepo(t)
	first := tr.commit("initial commit")
	tr.commit("second")
	tr.commit("third")
	r := New(newTestConfig(), tr.repo)

	hash, err := r.FirstCommit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.String(), hash)
}

func TestTagLog(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("initial commit")
	h1 := tr.commit("first release")
	tr.tag("dev0.1.0", h1, false)
	h2 := tr.commit("second release")
	tr.tag("dev0.2.0", h2, true)
	tr.tag("latest", h2, false)
	tr.commit("unreleased")
	r := New(newTestConfig(), tr.repo)

	raw, err := r.TagLog(context.Background())
	require.NoError(t, err)

	lines := strings.Split(raw, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, h2.String()[:7]+" 2023-03-04  (tag: dev0.2.0, tag: latest)", lines[0])
	assert.Equal(t, h1.String()[:7]+" 2023-03-03  (tag: dev0.1.0)", lines[1])

	tags := changelog.ParseTags(raw)
	require.Len(t, tags, 2)
	assert.Equal(t, "dev0.1.0", tags[0].Name)
	assert.Equal(t, "dev0.2.0", tags[1].Name)
	assert.Equal(t, h1.String()[:7], tags[0].Hash)
}

func TestTagLogSameTime(t *testing.T) {
	tr := newTestRepo(t)
	tr.commitAt("initial commit", epoch)
	h1 := tr.commitAt("first release", epoch)
	tr.tag("dev0.1.0", h1, true)
	h2 := tr.commitAt("second release", epoch)
	tr.tag("dev0.2.0", h2, true)
	h3 := tr.commitAt("third release", epoch)
	tr.tag("dev0.3.0", h3, false)
	r := New(newTestConfig(), tr.repo)

	for i := 0; i < 20; i++ {
		raw, err := r.TagLog(context.Background())
		require.NoError(t, err)

		tags := changelog.ParseTags(raw)
		require.Len(t, tags, 3)
		assert.Equal(t, "dev0.1.0", tags[0].Name)
		assert.Equal(t, "dev0.2.0", tags[1].Name)
		assert.Equal(t, "dev0.3.0", tags[2].Name)
	}
}

func TestCommitLogWrappedSubject(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("initial commit")
	tr.commit("Resolve \"Added login\"")
	h := tr.commit("Merge branch 'login' into 'main'\nSee merge request group/app!42\n\nbody text !7")
	r := New(newTestConfig(), tr.repo)

	raw, err := r.CommitLog(context.Background(), "", "")
	require.NoError(t, err)
	lines := strings.Split(raw, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, h.String()+" Merge branch 'login' into 'main' See merge request group/app!42", lines[0])

	entries := changelog.ExtractAll(changelog.ParseCommits(raw))
	require.Len(t, entries, 1)
	assert.Equal(t, "Added login !42", entries[0].String())
}

func TestCommitLog(t *testing.T) {
	tr := newTestRepo(t)
	first := tr.commit("initial commit")
	h1 := tr.commit("Resolve \"Added login\"")
	tr.tag("dev0.1.0", h1, true)
	tr.commit("Resolve \"Fixed logout\"")
	h3 := tr.commit("Merge branch 'fix-logout' into 'main' !12\n\nSee merge request group/project!12")
	r := New(newTestConfig(), tr.repo)
	ctx := context.Background()

	t.Run("range", func(t *testing.T) {
		raw, err := r.CommitLog(ctx, "dev0.1.0", "")
		require.NoError(t, err)
		lines := strings.Split(raw, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, h3.String()+" Merge branch 'fix-logout' into 'main' !12", lines[0])
		assert.True(t, strings.HasSuffix(lines[1], " Resolve \"Fixed logout\""))

		commits := changelog.ParseCommits(raw)
		entries := changelog.ExtractAll(commits)
		require.Len(t, entries, 1)
		assert.Equal(t, "Fixed logout !12", entries[0].String())
	})

	t.Run("from-first", func(t *testing.T) {
		raw, err := r.CommitLog(ctx, first.String(), "dev0.1.0")
		require.NoError(t, err)
		assert.Equal(t, h1.String()+" Resolve \"Added login\"", raw)
	})

	t.Run("all", func(t *testing.T) {
		raw, err := r.CommitLog(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, strings.Split(raw, "\n"), 4)
	})

	t.Run("unknown-ref", func(t *testing.T) {
		_, err := r.CommitLog(ctx, "dev9.9.9", "")
		assert.Error(t, err)
	})
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "hello", subject("hello\n\nbody"))
	assert.Equal(t, "hello", subject("  hello  \n"))
	assert.Equal(t, "", subject(""))
	assert.Equal(t, "one two three", subject("one\n  two\nthree  \n\nfour"))
}
