// Package lockset implementa bloqueos exclusivos por clave, adquiridos siempre en orden
// ascendente. Dos llamadas que comparten claves nunca se bloquean mutuamente en ciclo.
package lockset

import (
	"context"
	"sort"
	"sync"
)

// LockSet conjunto de bloqueos por clave. El valor cero no es usable; usar New.
type LockSet struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	sem  chan struct{} // capacidad 1: lleno = tomado
	refs int           // dueño actual + en espera
}

// New construye un LockSet vacío.
func New() *LockSet {
	return &LockSet{locks: make(map[string]*entry)}
}

// Acquire bloquea todas las claves (sin duplicados) en orden ascendente.
// Si ctx se cancela mientras espera, libera lo ya adquirido y devuelve ctx.Err().
// La función release es idempotente.
func (s *LockSet) Acquire(ctx context.Context, keys ...string) (release func(), err error) {
	ordered := sortedUnique(keys)
	held := make([]string, 0, len(ordered))

	for _, k := range ordered {
		e := s.ref(k)
		select {
		case e.sem <- struct{}{}:
			held = append(held, k)
		case <-ctx.Done():
			s.unref(k)
			s.releaseAll(held)
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { s.releaseAll(held) })
	}, nil
}

// Len número de claves con dueño o espera. Útil para verificar que no quedan bloqueos colgados.
func (s *LockSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

func (s *LockSet) ref(key string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		s.locks[key] = e
	}
	e.refs++
	return e
}

func (s *LockSet) unref(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(s.locks, key)
	}
}

// releaseAll libera en orden inverso al de adquisición.
func (s *LockSet) releaseAll(held []string) {
	for i := len(held) - 1; i >= 0; i-- {
		k := held[i]
		s.mu.Lock()
		e := s.locks[k]
		<-e.sem
		s.mu.Unlock()
		s.unref(k)
	}
}

func sortedUnique(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
