package mq

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-mq/pkg/logger"
)

// Registry tracks the named queues owned by a host component so they can be
// inspected together and closed on shutdown. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	queues map[string]Stater
	log    *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		queues: make(map[string]Stater),
		log:    logger.OrNop(log).Named("mq.registry"),
	}
}

// Register adds q under its name. Names are unique within a registry.
func (r *Registry) Register(q Stater) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := q.Name()
	if _, exists := r.queues[name]; exists {
		return errors.Wrapf(ErrDuplicateQueue, "register %q", name)
	}
	r.queues[name] = q
	r.log.Debug("queue registered", zap.String("queue", name), zap.String("id", q.ID()))
	return nil
}

// Unregister removes the queue with the given name without closing it.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.queues[name]; !ok {
		return false
	}
	delete(r.queues, name)
	return true
}

// Get returns the queue registered under name.
func (r *Registry) Get(name string) (Stater, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.queues[name]
	return q, ok
}

// Lookup returns the queue registered under name with its payload type.
func Lookup[T any](r *Registry, name string) (*MessageQueue[T], error) {
	s, ok := r.Get(name)
	if !ok {
		return nil, errors.Wrapf(ErrQueueNotFound, "lookup %q", name)
	}
	q, ok := s.(*MessageQueue[T])
	if !ok {
		return nil, errors.Errorf("mq: queue %q has payload type %T", name, s)
	}
	return q, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.queues))
	for name := range r.queues {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Stats returns a snapshot of every queue, sorted by name.
func (r *Registry) Stats() []Stats {
	r.mu.RLock()
	qs := make([]Stater, 0, len(r.queues))
	for _, q := range r.queues {
		qs = append(qs, q)
	}
	r.mu.RUnlock()

	out := make([]Stats, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Stats())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CloseAll closes every registered queue. Queues stay registered so that
// consumers can keep draining them.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, q := range r.queues {
		q.Close()
		r.log.Info("queue closed", zap.String("queue", name), zap.Int("pending", q.Stats().Size))
	}
}
