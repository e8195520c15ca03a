// Package lock serializa as mutações de agenda por (profissional, data).
package lock

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

// --------------------------------------------------
// Local
// --------------------------------------------------

// LocalLocker serve para uma única instância (ou testes).
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	ch := l.slot(key)

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-ctx.Done():
		return nil, httperr.ErrConflict("schedule_busy")
	}
}

var (
	_ domain.Locker = (*LocalLocker)(nil)
	_ domain.Locker = (*RedisLocker)(nil)
)
