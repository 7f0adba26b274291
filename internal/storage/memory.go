package storage

import (
	"context"
	"errors"
	"sync"
)

var errPutFailed = errors.New("storage put failed")

// Memory is an in-process Store used for tests and ephemeral scenarios.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// FailPuts makes every Put return failErr, for exercising the
	// logged-and-swallowed write failure path.
	FailPuts bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, true, nil
}

func (m *Memory) Put(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPuts {
		return errPutFailed
	}
	stored := make([]byte, len(blob))
	copy(stored, blob)
	m.blobs[key] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
