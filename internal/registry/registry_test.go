package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-while/go-probview/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSum = `{"problem_number":1,"title":"Two Sum","slug":"two-sum","languages":["python"],"created_at":"2025-01-10T09:30:00","solved":true,"code":{"python":{"user_solution":"x","leetcode_solution":""}}}`

func writeRecord(t *testing.T, dir, slug, body string) {
	t.Helper()
	path := RecordPath(dir, slug)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestResolveTwoSum(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "0001_two-sum", twoSum)

	r := New(dir)
	r.Register("0001_two-sum")

	var requested string
	r.SetLoader(func(path string) ([]byte, error) {
		requested = path
		return os.ReadFile(path)
	})

	p, err := r.Resolve(context.Background(), "0001_two-sum")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "0001_two-sum", "ui", "problem.json"), requested)
	assert.Equal(t, "Two Sum", p.Title)
	assert.True(t, p.Solved)
}

func TestResolveNoSlug(t *testing.T) {
	r := New(t.TempDir())
	var calls int32
	r.SetLoader(func(string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	})
	_, err := r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSlug)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestResolveUnregisteredSkipsFilesystem(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "0002_add-two-numbers", twoSum)

	r := New(dir)
	var calls int32
	r.SetLoader(func(string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	})
	_, err := r.Resolve(context.Background(), "0002_add-two-numbers")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestResolveMissingFile(t *testing.T) {
	r := New(t.TempDir())
	r.Register("0009_gone")
	_, err := r.Resolve(context.Background(), "0009_gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveMalformed(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "0004_broken", `{"title": 5}`)

	r := New(dir)
	r.Register("0004_broken")
	_, err := r.Resolve(context.Background(), "0004_broken")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMalformed))
}

func TestResolveCanceled(t *testing.T) {
	r := New(t.TempDir())
	r.Register("0001_two-sum")

	release := make(chan struct{})
	finished := make(chan struct{})
	r.SetLoader(func(string) ([]byte, error) {
		defer close(finished)
		<-release
		return []byte(twoSum), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	p, err := r.Resolve(ctx, "0001_two-sum")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("loader goroutine did not finish")
	}
}

func TestReloadSwapsMapping(t *testing.T) {
	r := New("/srv/problems")
	r.Register("old")
	r.Reload([]Entry{{Slug: "0002_b"}, {Slug: "0001_a", Path: "/elsewhere/a.json"}, {Slug: ""}})

	assert.False(t, r.Has("old"))
	assert.Equal(t, []string{"0001_a", "0002_b"}, r.Slugs())
	assert.Equal(t, 2, r.Len())

	path, err := r.Path("0001_a")
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/a.json", path)

	path, err = r.Path("0002_b")
	require.NoError(t, err)
	assert.Equal(t, RecordPath("/srv/problems", "0002_b"), path)
}
