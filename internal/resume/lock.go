package resume

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/utils"
)

// BuildLocker guards Build per job. Acquire never waits: a held lock yields
// ErrBuildInProgress.
type BuildLocker interface {
	Acquire(ctx context.Context, jobID int64) (release func(), err error)
}

// NewBuildLocker selects a locker by mode: none, local or redis
func NewBuildLocker(mode string, redis *utils.RedisClient, ttl time.Duration) (BuildLocker, error) {
	switch mode {
	case "", "none":
		return noLock{}, nil
	case "local":
		return NewLocalLocker(), nil
	case "redis":
		if redis == nil {
			return nil, fmt.Errorf("build lock mode redis requires redis to be enabled")
		}
		return &redisLocker{client: redis, ttl: ttl}, nil
	default:
		return nil, fmt.Errorf("unknown build lock mode: %s", mode)
	}
}

// noLock lets concurrent builds race; the last upsert wins
type noLock struct{}

func (noLock) Acquire(ctx context.Context, jobID int64) (func(), error) {
	return func() {}, nil
}

// LocalLocker excludes concurrent builds of the same job within this process
type LocalLocker struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[int64]struct{})}
}

func (l *LocalLocker) Acquire(ctx context.Context, jobID int64) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[jobID]; ok {
		return nil, ErrBuildInProgress
	}
	l.held[jobID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, jobID)
			l.mu.Unlock()
		})
	}, nil
}

type redisLocker struct {
	client *utils.RedisClient
	ttl    time.Duration
}

func (r *redisLocker) Acquire(ctx context.Context, jobID int64) (func(), error) {
	release, err := r.client.AcquireBuildLock(ctx, jobID, r.ttl)
	if errors.Is(err, utils.ErrLockHeld) {
		return nil, ErrBuildInProgress
	}
	return release, err
}
