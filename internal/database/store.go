package database

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Store is a string-keyed, string-valued persistent map.
// Every component owns a disjoint set of keys in one shared Store.
type Store interface {
	// Get returns the value and true, or "" and false when the key is absent
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	MultiRemove(ctx context.Context, keys ...string) error
	Close() error
}

// Memory is an in-process Store used by tests and the "memory" backend
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) MultiRemove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// Keys returns the stored keys in sorted order
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrInjected is returned by FaultStore when a failure is switched on
var ErrInjected = errors.New("injected storage failure")

// FaultStore wraps a Store and fails reads or writes on demand
type FaultStore struct {
	Store
	mu        sync.Mutex
	failRead  bool
	failWrite bool
}

// NewFaultStore wraps inner
func NewFaultStore(inner Store) *FaultStore {
	return &FaultStore{Store: inner}
}

// FailReads switches read failures on or off
func (f *FaultStore) FailReads(on bool) {
	f.mu.Lock()
	f.failRead = on
	f.mu.Unlock()
}

// FailWrites switches write failures on or off
func (f *FaultStore) FailWrites(on bool) {
	f.mu.Lock()
	f.failWrite = on
	f.mu.Unlock()
}

func (f *FaultStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failRead
	f.mu.Unlock()
	if fail {
		return "", false, ErrInjected
	}
	return f.Store.Get(ctx, key)
}

func (f *FaultStore) Set(ctx context.Context, key, value string) error {
	if f.writesFail() {
		return ErrInjected
	}
	return f.Store.Set(ctx, key, value)
}

func (f *FaultStore) Remove(ctx context.Context, key string) error {
	if f.writesFail() {
		return ErrInjected
	}
	return f.Store.Remove(ctx, key)
}

func (f *FaultStore) MultiRemove(ctx context.Context, keys ...string) error {
	if f.writesFail() {
		return ErrInjected
	}
	return f.Store.MultiRemove(ctx, keys...)
}

func (f *FaultStore) writesFail() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWrite
}
