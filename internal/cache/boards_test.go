package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard/internal/dto"
)

type countingLister struct {
	boards []dto.BoardDTO
	calls  int
}

func (l *countingLister) ListBoards(ctx context.Context) ([]dto.BoardDTO, error) {
	l.calls++
	return l.boards, nil
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	m, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() {
		if cerr := client.Close(); cerr != nil {
			t.Logf("redis close: %v", cerr)
		}
	})
	return m, client
}

func TestBoards_ReadThroughAndEvict(t *testing.T) {
	m, client := newRedis(t)
	base := &countingLister{boards: []dto.BoardDTO{{ID: 1, Name: "Core", TaskCount: 2}}}
	cache := NewBoards(base, client, time.Minute, logrus.New())
	ctx := context.Background()

	first, err := cache.ListBoards(ctx)
	require.NoError(t, err)
	second, err := cache.ListBoards(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, base.calls)
	assert.True(t, m.Exists(boardsKey))
	assert.Equal(t, time.Minute, m.TTL(boardsKey))

	cache.Evict(ctx)
	assert.False(t, m.Exists(boardsKey))

	base.boards = []dto.BoardDTO{{ID: 1, Name: "Core", TaskCount: 3}}
	third, err := cache.ListBoards(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), third[0].TaskCount)
	assert.Equal(t, 2, base.calls)
}

func TestBoards_ExpiresWithTTL(t *testing.T) {
	m, client := newRedis(t)
	base := &countingLister{boards: []dto.BoardDTO{{ID: 1}}}
	cache := NewBoards(base, client, time.Second, nil)
	ctx := context.Background()

	_, err := cache.ListBoards(ctx)
	require.NoError(t, err)
	m.FastForward(2 * time.Second)
	_, err = cache.ListBoards(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, base.calls)
}

func TestBoards_EmptyListNotCached(t *testing.T) {
	m, client := newRedis(t)
	base := &countingLister{boards: []dto.BoardDTO{}}
	cache := NewBoards(base, client, time.Minute, nil)

	_, err := cache.ListBoards(context.Background())
	require.NoError(t, err)
	assert.False(t, m.Exists(boardsKey))
}

func TestBoards_RedisDownFallsThrough(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	base := &countingLister{boards: []dto.BoardDTO{{ID: 1}}}
	cache := NewBoards(base, client, time.Minute, logrus.New())

	boards, err := cache.ListBoards(context.Background())
	require.NoError(t, err)
	assert.Len(t, boards, 1)
	cache.Evict(context.Background())
}

func TestBoards_CorruptEntry(t *testing.T) {
	m, client := newRedis(t)
	require.NoError(t, m.Set(boardsKey, "not json"))
	base := &countingLister{boards: []dto.BoardDTO{{ID: 5}}}
	cache := NewBoards(base, client, time.Minute, logrus.New())

	boards, err := cache.ListBoards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), boards[0].ID)
	assert.Equal(t, 1, base.calls)
}

func TestBoards_NilClient(t *testing.T) {
	base := &countingLister{boards: []dto.BoardDTO{{ID: 1}}}
	cache := NewBoards(base, nil, time.Minute, nil)

	_, _ = cache.ListBoards(context.Background())
	_, _ = cache.ListBoards(context.Background())
	cache.Evict(context.Background())
	assert.Equal(t, 2, base.calls)
}
