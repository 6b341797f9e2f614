// Package lock provides per-session locking so that engine state is
// mutated by one caller at a time.
package lock

import (
	"context"
	"sync"
	"time"
)

// sessionMutex wraps a mutex with reference counting for cleanup.
type sessionMutex struct {
	mu       sync.Mutex
	refCount int
}

// SessionLock provides per-session locking. Engines are plain structs
// with no internal synchronization; the shell serializes access to a
// live match through its session's lock.
type SessionLock struct {
	locks sync.Map // map[string]*sessionMutex
	pool  sync.Pool
}

// NewSessionLock creates a new SessionLock instance.
func NewSessionLock() *SessionLock {
	return &SessionLock{
		pool: sync.Pool{
			New: func() any {
				return &sessionMutex{}
			},
		},
	}
}

// getLock retrieves or creates a mutex for the given session ID.
func (sl *SessionLock) getLock(sessionID string) *sessionMutex {
	if v, ok := sl.locks.Load(sessionID); ok {
		return v.(*sessionMutex)
	}

	newLock := sl.pool.Get().(*sessionMutex)
	newLock.refCount = 0

	// LoadOrStore handles two goroutines racing to create the lock.
	actual, loaded := sl.locks.LoadOrStore(sessionID, newLock)
	if loaded {
		sl.pool.Put(newLock)
	}
	return actual.(*sessionMutex)
}

// Lock acquires the lock for a session.
func (sl *SessionLock) Lock(sessionID string) {
	lock := sl.getLock(sessionID)
	lock.mu.Lock()
	lock.refCount++
}

// Unlock releases the lock for a session.
func (sl *SessionLock) Unlock(sessionID string) {
	if v, ok := sl.locks.Load(sessionID); ok {
		lock := v.(*sessionMutex)
		lock.refCount--
		lock.mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false otherwise.
func (sl *SessionLock) TryLock(sessionID string) bool {
	lock := sl.getLock(sessionID)
	if lock.mu.TryLock() {
		lock.refCount++
		return true
	}
	return false
}

// LockWithTimeout attempts to acquire the lock with a timeout.
// Returns true if the lock was acquired, false if the timeout fired.
func (sl *SessionLock) LockWithTimeout(ctx context.Context, sessionID string, timeout time.Duration) bool {
	lock := sl.getLock(sessionID)

	done := make(chan struct{})

	go func() {
		lock.mu.Lock()
		close(done)
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-done:
		lock.refCount++
		return true
	case <-timeoutCtx.Done():
		// The waiting goroutine will eventually acquire the mutex;
		// hand it straight back so the session is not left locked.
		go func() {
			<-done
			lock.mu.Unlock()
		}()
		return false
	}
}

// WithLock executes a function while holding the session's lock.
func (sl *SessionLock) WithLock(sessionID string, fn func() error) error {
	sl.Lock(sessionID)
	defer sl.Unlock(sessionID)
	return fn()
}

// WithLockContext executes a function while holding the session's lock,
// with context support for cancellation.
func (sl *SessionLock) WithLockContext(ctx context.Context, sessionID string, timeout time.Duration, fn func() error) error {
	if !sl.LockWithTimeout(ctx, sessionID, timeout) {
		return ErrLockTimeout
	}
	defer sl.Unlock(sessionID)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fn()
	}
}

// IsLocked checks if a session currently has an active lock.
// Note: This is a point-in-time check and may change immediately after.
func (sl *SessionLock) IsLocked(sessionID string) bool {
	if v, ok := sl.locks.Load(sessionID); ok {
		lock := v.(*sessionMutex)
		if lock.mu.TryLock() {
			lock.mu.Unlock()
			return false
		}
		return true
	}
	return false
}

// Release drops the lock entry for a finished session, returning its
// mutex to the pool when nothing holds or waits on it.
func (sl *SessionLock) Release(sessionID string) {
	if v, ok := sl.locks.Load(sessionID); ok {
		lock := v.(*sessionMutex)
		if lock.mu.TryLock() {
			if lock.refCount == 0 {
				sl.locks.Delete(sessionID)
				lock.mu.Unlock()
				sl.pool.Put(lock)
				return
			}
			lock.mu.Unlock()
		}
	}
}

// DefaultSessionLock is the global session lock instance.
var DefaultSessionLock = NewSessionLock()

// Lock acquires the lock for a session using the default instance.
func Lock(sessionID string) {
	DefaultSessionLock.Lock(sessionID)
}

// Unlock releases the lock for a session using the default instance.
func Unlock(sessionID string) {
	DefaultSessionLock.Unlock(sessionID)
}

// TryLock attempts to acquire the lock using the default instance.
func TryLock(sessionID string) bool {
	return DefaultSessionLock.TryLock(sessionID)
}

// WithLock executes a function while holding the lock using the default instance.
func WithLock(sessionID string, fn func() error) error {
	return DefaultSessionLock.WithLock(sessionID, fn)
}
