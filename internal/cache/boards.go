// Package cache provides a Redis read-through cache for the board list.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard/internal/dto"
)

const boardsKey = "taskboard:boards"

// BoardLister is the uncached source of boards
type BoardLister interface {
	ListBoards(ctx context.Context) ([]dto.BoardDTO, error)
}

// Boards wraps a BoardLister with Redis-backed caching. Cache failures are
// logged and fall through to the base lister.
type Boards struct {
	base  BoardLister
	redis *redis.Client
	ttl   time.Duration
	log   logrus.FieldLogger
}

// NewBoards creates a caching BoardLister using the provided Redis client and TTL
func NewBoards(base BoardLister, client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *Boards {
	if base == nil {
		panic("cache.NewBoards: base lister is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Boards{base: base, redis: client, ttl: ttl, log: log}
}

// ListBoards returns the cached board list, loading it on a miss
func (b *Boards) ListBoards(ctx context.Context) ([]dto.BoardDTO, error) {
	if boards, ok := b.load(ctx); ok {
		return boards, nil
	}

	boards, err := b.base.ListBoards(ctx)
	if err != nil {
		return nil, err
	}

	// An empty list is what the base returns on a soft failure; do not pin it.
	if len(boards) > 0 {
		b.store(ctx, boards)
	}
	return boards, nil
}

// Evict drops the cached list. Task writes call it because they change
// task counts.
func (b *Boards) Evict(ctx context.Context) {
	if b.redis == nil {
		return
	}
	if err := b.redis.Del(ctx, boardsKey).Err(); err != nil {
		b.log.WithError(err).Warn("board cache evict failed")
	}
}

func (b *Boards) load(ctx context.Context) ([]dto.BoardDTO, bool) {
	if b.redis == nil {
		return nil, false
	}

	data, err := b.redis.Get(ctx, boardsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			b.log.WithError(err).Warn("board cache read failed")
		}
		return nil, false
	}

	var boards []dto.BoardDTO
	if err := json.Unmarshal(data, &boards); err != nil {
		b.log.WithError(err).Warn("board cache entry corrupt")
		return nil, false
	}
	return boards, true
}

func (b *Boards) store(ctx context.Context, boards []dto.BoardDTO) {
	if b.redis == nil {
		return
	}

	data, err := json.Marshal(boards)
	if err != nil {
		return
	}
	if err := b.redis.Set(ctx, boardsKey, data, b.ttl).Err(); err != nil {
		b.log.WithError(err).Warn("board cache write failed")
	}
}
