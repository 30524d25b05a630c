// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/testable"
)

func sampleTable() *record.Table {
	t := record.NewTable("handle", "followers", "category")
	t.Append(record.Row{"handle": "alice", "followers": "1,000", "category": "crypto"})
	t.Append(record.Row{"handle": "bob", "followers": "500"})
	return t
}

// roundTrip exercises the Source contract shared by every store.
func roundTrip(t *testing.T, s Source) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Read(ctx, "followers")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, ErrSheetNotFound)

	require.NoError(t, s.Write(ctx, "followers", sampleTable()))

	got, err := s.Read(ctx, "followers")
	require.NoError(t, err)
	assert.Equal(t, []string{"handle", "followers", "category"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "1,000", got.Rows[0]["followers"])
	assert.Equal(t, "bob", got.Rows[1]["handle"])

	// Full overwrite: the second write replaces every row.
	repl := record.NewTable("handle", "followers")
	repl.Append(record.Row{"handle": "carol", "followers": "7"})
	require.NoError(t, s.Write(ctx, "followers", repl))

	got, err = s.Read(ctx, "followers")
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "carol", got.Rows[0]["handle"])

	if sh, ok := s.(Sheets); ok {
		names, err := sh.Sheets(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"followers"}, names)
	}

	assert.Error(t, s.Write(ctx, "../escape", repl))
}

func TestMemory_RoundTrip(t *testing.T) {
	roundTrip(t, NewMemory(nil))
}

func TestCSVDir_RoundTrip(t *testing.T) {
	roundTrip(t, NewCSVDir(t.TempDir()))
}

func TestSQLite_RoundTrip(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "sheets.db"))
	require.NoError(t, err)
	defer s.Close()
	roundTrip(t, s)
}

func TestCSVDir_ShortRowsAndBOM(t *testing.T) {
	dir := t.TempDir()
	content := "\ufeffhandle,followers,note\nalice,10\nbob,20,hi,extra\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "followers.csv"), []byte(content), 0o600))

	got, err := NewCSVDir(dir).Read(context.Background(), "followers")
	require.NoError(t, err)
	assert.Equal(t, []string{"handle", "followers", "note"}, got.Columns)
	require.Len(t, got.Rows, 2)
	_, present := got.Rows[0].Cell("note")
	assert.False(t, present, "short row leaves cell absent")
	assert.Equal(t, "hi", got.Rows[1]["note"])
}

func TestCSVDir_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.csv"), nil, 0o600))
	got, err := NewCSVDir(dir).Read(context.Background(), "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestCSVDir_RenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	var removed string
	fsys := &testable.MockFileSystem{
		RenameFn: func(_, _ string) error { return errors.New("disk full") },
		RemoveFn: func(name string) error {
			removed = name
			return os.Remove(name)
		},
	}
	err := NewCSVDir(dir).WithFS(fsys).Write(context.Background(), "followers", sampleTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, filepath.Join(dir, "followers.csv.tmp"), removed)
}

func TestCSVDir_ReadFailureIsUnavailable(t *testing.T) {
	fsys := &testable.MockFileSystem{
		ReadFileFn: func(string) ([]byte, error) { return nil, errors.New("permission denied") },
	}
	_, err := NewCSVDir(t.TempDir()).WithFS(fsys).Read(context.Background(), "followers")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.NotErrorIs(t, err, ErrSheetNotFound)
}

func TestMemory_InjectedErrors(t *testing.T) {
	m := NewMemory(map[string]*record.Table{"followers": sampleTable()})
	m.ReadErr = errors.New("quota exceeded")
	_, err := m.Read(context.Background(), "followers")
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	m.WriteErr = errors.New("network")
	assert.Error(t, m.Write(context.Background(), "followers", sampleTable()))
}

func TestMemory_CopiesTables(t *testing.T) {
	m := NewMemory(map[string]*record.Table{"followers": sampleTable()})
	got, err := m.Read(context.Background(), "followers")
	require.NoError(t, err)
	got.Rows[0]["handle"] = "mallory"

	again, err := m.Read(context.Background(), "followers")
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Rows[0]["handle"])
}

func TestCached_ServesWithinTTL(t *testing.T) {
	m := NewMemory(map[string]*record.Table{"followers": sampleTable()})
	c := NewCached(m, 30*time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := c.Read(ctx, "followers")
	require.NoError(t, err)
	_, err = c.Read(ctx, "followers")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Reads())

	age, ok := c.Age("followers")
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), age)

	now = now.Add(31 * time.Minute)
	_, err = c.Read(ctx, "followers")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Reads())
}

func TestCached_ZeroMaxAgeReadsThrough(t *testing.T) {
	m := NewMemory(map[string]*record.Table{"visitors": sampleTable()})
	c := NewCached(m, time.Hour)
	ctx := context.Background()

	_, err := ReadWithin(ctx, c, "visitors", 0)
	require.NoError(t, err)
	_, err = ReadWithin(ctx, c, "visitors", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Reads())
}

func TestCached_ClearDropsEverything(t *testing.T) {
	m := NewMemory(map[string]*record.Table{"a": sampleTable(), "b": sampleTable()})
	c := NewCached(m, time.Hour)
	ctx := context.Background()

	for _, s := range []string{"a", "b"} {
		_, err := c.Read(ctx, s)
		require.NoError(t, err)
	}
	c.Clear()
	_, okA := c.Age("a")
	_, okB := c.Age("b")
	assert.False(t, okA)
	assert.False(t, okB)
}

func TestCached_WriteClearsCacheLastWriteWins(t *testing.T) {
	m := NewMemory(map[string]*record.Table{"followers": sampleTable()})
	c := NewCached(m, time.Hour)
	ctx := context.Background()

	_, err := c.Read(ctx, "followers")
	require.NoError(t, err)

	first := record.NewTable("handle")
	first.Append(record.Row{"handle": "first"})
	second := record.NewTable("handle")
	second.Append(record.Row{"handle": "second"})
	require.NoError(t, c.Write(ctx, "followers", first))
	require.NoError(t, c.Write(ctx, "followers", second))

	got, err := c.Read(ctx, "followers")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Rows[0]["handle"])
}

func TestCached_WriteKeepsOtherSheets(t *testing.T) {
	m := NewMemory(map[string]*record.Table{"followers": sampleTable(), "visitors": sampleTable()})
	c := NewCached(m, time.Hour)
	ctx := context.Background()

	_, err := c.Read(ctx, "followers")
	require.NoError(t, err)
	require.NoError(t, c.Write(ctx, "visitors", sampleTable()))

	_, ok := c.Age("followers")
	assert.True(t, ok)
	_, ok = c.Age("visitors")
	assert.False(t, ok)
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	m := NewMemory(nil)
	c := NewCached(m, time.Hour)
	_, err := c.Read(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	_, ok := c.Age("missing")
	assert.False(t, ok)
}

func TestCached_ConcurrentReaders(t *testing.T) {
	m := NewMemory(map[string]*record.Table{"followers": sampleTable()})
	c := NewCached(m, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Read(context.Background(), "followers")
			assert.NoError(t, err)
			assert.Equal(t, 2, got.Len())
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, m.Reads(), 16)
	assert.GreaterOrEqual(t, m.Reads(), 1)
}

// gatedSource blocks the first Read after the data is fetched until release
// is closed. Reads honour context cancellation like the SQL store does.
type gatedSource struct {
	*Memory
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedSource(m *Memory) *gatedSource {
	return &gatedSource{Memory: m, started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedSource) Read(ctx context.Context, sheet string) (*record.Table, error) {
	t, err := g.Memory.Read(ctx, sheet)
	first := false
	g.once.Do(func() { first = true })
	if !first {
		return t, err
	}
	close(g.started)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, ctx.Err())
	}
	return t, err
}

func handles(t *testing.T, tbl *record.Table) string {
	t.Helper()
	require.NotNil(t, tbl)
	require.NotEmpty(t, tbl.Rows)
	return tbl.Rows[0]["handle"]
}

func oneHandle(h string) *record.Table {
	t := record.NewTable("handle")
	t.Append(record.Row{"handle": h})
	return t
}

func TestCached_WriteDuringReadIsNotMasked(t *testing.T) {
	g := newGatedSource(NewMemory(map[string]*record.Table{"payouts": oneHandle("old")}))
	c := NewCached(g, time.Hour)
	ctx := context.Background()

	done := make(chan *record.Table)
	go func() {
		got, err := c.Read(ctx, "payouts")
		assert.NoError(t, err)
		done <- got
	}()
	<-g.started

	require.NoError(t, c.Write(ctx, "payouts", oneHandle("new")))
	close(g.release)
	assert.Equal(t, "old", handles(t, <-done))

	_, ok := c.Age("payouts")
	assert.False(t, ok, "a read older than the write must not be stored")

	got, err := c.Read(ctx, "payouts")
	require.NoError(t, err)
	assert.Equal(t, "new", handles(t, got))
}

func TestCached_ClearDuringReadIsNotMasked(t *testing.T) {
	m := NewMemory(map[string]*record.Table{"projects": oneHandle("old")})
	g := newGatedSource(m)
	c := NewCached(g, time.Hour)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.Read(ctx, "projects")
		assert.NoError(t, err)
	}()
	<-g.started

	require.NoError(t, m.Write(ctx, "projects", oneHandle("new")))
	c.Clear()
	close(g.release)
	<-done

	got, err := c.Read(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, "new", handles(t, got))
}

func TestCached_SharedReadSurvivesCallerCancel(t *testing.T) {
	g := newGatedSource(NewMemory(map[string]*record.Table{"followers": oneHandle("alice")}))
	c := NewCached(g, time.Hour)

	ctx1, cancel1 := context.WithCancel(context.Background())
	defer cancel1()
	err1 := make(chan error, 1)
	go func() {
		_, err := c.Read(ctx1, "followers")
		err1 <- err
	}()
	<-g.started

	type result struct {
		tbl *record.Table
		err error
	}
	res2 := make(chan result, 1)
	go func() {
		got, err := c.Read(context.Background(), "followers")
		res2 <- result{got, err}
	}()

	cancel1()
	assert.ErrorIs(t, <-err1, context.Canceled)

	// Give the second caller time to join the in-flight read before it is
	// released. If it missed it, it simply performs its own read.
	time.Sleep(20 * time.Millisecond)
	close(g.release)

	r := <-res2
	require.NoError(t, r.err)
	assert.Equal(t, "alice", handles(t, r.tbl))
	assert.Equal(t, 1, g.Reads(), "callers share one read")
}

func TestOpen(t *testing.T) {
	s, closer, err := Open(KindCSV, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &CSVDir{}, s)
	require.NoError(t, closer.Close())

	s, closer, err = Open(KindSQLite, filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, closer.Close())

	_, _, err = Open("gsheets", "")
	assert.Error(t, err)
}

func TestValidSheetName(t *testing.T) {
	assert.True(t, ValidSheetName("followers"))
	assert.True(t, ValidSheetName("payouts_2026-w01"))
	assert.False(t, ValidSheetName(""))
	assert.False(t, ValidSheetName("../x"))
	assert.False(t, ValidSheetName("a/b"))
}
