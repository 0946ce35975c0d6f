package mq

import (
	"github.com/google/uuid"

	"github.com/huynhanx03/go-mq/pkg/settings"
	"github.com/huynhanx03/go-mq/pkg/timer"
	"github.com/huynhanx03/go-mq/pkg/utils"
)

type options struct {
	name     string
	id       string
	capacity int
	clock    timer.Timer
	ownClock bool // stopped by Close
}

// Option configures a MessageQueue.
type Option func(*options)

// WithCapacity bounds the queue. Zero or a negative value means unbounded.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.capacity = n
	}
}

// WithName sets the diagnostic name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithID sets the diagnostic id. A random UUID is used when unset.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithClock sets the clock used to stamp pending messages.
func WithClock(clock timer.Timer) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// withOwnedClock hands the clock to the queue, which stops it on Close.
func withOwnedClock(clock timer.Timer) Option {
	return func(o *options) {
		o.clock = clock
		o.ownClock = true
	}
}

// FromSettings translates a queue configuration into options.
func FromSettings(cfg settings.MessageQueue) []Option {
	opts := []Option{
		WithName(cfg.Name),
		WithCapacity(cfg.Capacity),
	}
	if cfg.ID != "" {
		opts = append(opts, WithID(cfg.ID))
	}
	if cfg.ClockResolutionMs > 0 {
		opts = append(opts, withOwnedClock(timer.NewCachedTimer(utils.ToDurationMs(cfg.ClockResolutionMs))))
	}
	return opts
}

func defaultOptions() options {
	return options{clock: timer.System()}
}

func (o *options) finish() {
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.name == "" {
		o.name = o.id
	}
}
