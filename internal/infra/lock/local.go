package lock

import (
	"context"
	"sync"

	"commons-dinner/internal/domain/job"
)

// LocalLocker is the in-process fallback when no Redis address is configured
type LocalLocker struct {
	mu      sync.Mutex
	running map[job.Type]struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{running: make(map[job.Type]struct{})}
}

func (l *LocalLocker) Acquire(_ context.Context, t job.Type) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.running[t]; busy {
		return nil, job.ErrJobAlreadyRunning
	}
	l.running[t] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.running, t)
			l.mu.Unlock()
		})
	}, nil
}
