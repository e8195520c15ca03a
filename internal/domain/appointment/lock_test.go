package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLocker struct {
	locked   []string
	unlocked []string
	failOn   string
}

func (r *recordingLocker) Lock(_ context.Context, key string) (func(), error) {
	if key == r.failOn {
		return nil, errors.New("busy")
	}
	r.locked = append(r.locked, key)
	return func() { r.unlocked = append(r.unlocked, key) }, nil
}

func TestLockKey(t *testing.T) {
	assert.Equal(t, "booking:staff:7:2026-03-10", LockKey(7, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestLockAllSortsAndDedupes(t *testing.T) {
	l := &recordingLocker{}

	unlock, err := LockAll(context.Background(), l, "b", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, l.locked)

	unlock()
	assert.Equal(t, []string{"b", "a"}, l.unlocked)
}

func TestLockAllReleasesOnFailure(t *testing.T) {
	l := &recordingLocker{failOn: "b"}

	_, err := LockAll(context.Background(), l, "a", "b")
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, l.unlocked)
}
