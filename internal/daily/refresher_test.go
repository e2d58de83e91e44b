package daily

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiblet/vocab/internal/library"
	"github.com/yiblet/vocab/internal/store"
	"github.com/yiblet/vocab/internal/store/memstore"
)

type fakeSource struct {
	calls int32
	words []store.Word
	err   error
}

func (f *fakeSource) Fetch(ctx context.Context, n int) ([]store.Word, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	if n < len(f.words) {
		return f.words[:n], nil
	}
	return f.words, nil
}

var quiet = log.New(io.Discard, "", 0)

func words() []store.Word {
	return []store.Word{
		{ID: 1, Text: "apt", Definition: "suitable"},
		{ID: 2, Text: "brisk", Definition: "quick"},
		{ID: 3, Text: "crux", Definition: "core"},
	}
}

func TestRefresh_FetchesOncePerDay(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.Local)
	lib := library.New(memstore.NewMemoryStoreWithClock(func() time.Time { return now }))
	src := &fakeSource{words: words()}
	r := NewRefresher(src, lib, 2, quiet)

	fetched, err := r.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, fetched)

	fetched, err = r.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, fetched, "cache is already filled for today")
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))

	cached, err := lib.CachedDailyWords()
	require.NoError(t, err)
	assert.Len(t, cached, 2)

	now = now.AddDate(0, 0, 1)
	fetched, err = r.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestRefresh_Force(t *testing.T) {
	lib := library.New(memstore.NewMemoryStore())
	src := &fakeSource{words: words()}
	r := NewRefresher(src, lib, 0, quiet)

	_, err := r.Refresh(context.Background(), false)
	require.NoError(t, err)
	fetched, err := r.Refresh(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestRefresh_SourceErrorLeavesCache(t *testing.T) {
	lib := library.New(memstore.NewMemoryStore())
	require.NoError(t, lib.CacheDailyWords(words()[:1]))

	src := &fakeSource{err: errors.New("offline")}
	r := NewRefresher(src, lib, 3, quiet)

	_, err := r.Refresh(context.Background(), true)
	require.Error(t, err)

	cached, err := lib.CachedDailyWords()
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	r := NewRefresher(&fakeSource{}, library.New(memstore.NewMemoryStore()), 1, quiet)
	assert.Error(t, r.Start("not a schedule"))
}

func TestStart_RunsImmediately(t *testing.T) {
	lib := library.New(memstore.NewMemoryStore())
	src := &fakeSource{words: words()}
	r := NewRefresher(src, lib, 3, quiet)

	require.NoError(t, r.Start("@daily"))
	defer r.Stop()
	assert.Error(t, r.Start("@daily"), "second Start is rejected")

	require.Eventually(t, func() bool {
		has, err := lib.HasCachedWordsForToday()
		return err == nil && has
	}, 2*time.Second, 10*time.Millisecond)
}

type slowSource struct {
	delay time.Duration
	words []store.Word
}

func (s *slowSource) Fetch(ctx context.Context, n int) ([]store.Word, error) {
	time.Sleep(s.delay)
	return s.words, nil
}

func TestStop_WaitsForStartupRefresh(t *testing.T) {
	lib := library.New(memstore.NewMemoryStore())
	r := NewRefresher(&slowSource{delay: 300 * time.Millisecond, words: words()}, lib, 3, quiet)

	require.NoError(t, r.Start("@daily"))
	time.Sleep(20 * time.Millisecond)
	r.Stop()

	has, err := lib.HasCachedWordsForToday()
	require.NoError(t, err)
	assert.True(t, has, "the startup refresh must finish before Stop returns")
}
