package bridge

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/rxbridge/config"
	"github.com/kbukum/rxbridge/errors"
	"github.com/kbukum/rxbridge/logger"
	"github.com/kbukum/rxbridge/observability"
	"github.com/kbukum/rxbridge/pipeline"
	"github.com/kbukum/rxbridge/rx"
)

// DefaultBufferSize is the demand window used when no buffer size is
// configured.
const DefaultBufferSize = config.DefaultBufferSize

// --- Options ---

type options struct {
	name       string
	bufferSize int
	log        *logger.Logger
	metrics    *observability.StreamMetrics
}

// Option configures a bridged stream.
type Option func(*options)

// WithBufferSize sets the demand window: how many elements are requested
// from the publisher at a time. Values below one fall back to the default.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithName attaches a human-readable name to the stream's logs.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger overrides the logger used by the stream.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics attaches stream metrics. Without it the stream records
// nothing.
func WithMetrics(m *observability.StreamMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithConfig applies a loaded StreamConfig.
func WithConfig(cfg config.StreamConfig) Option {
	return func(o *options) {
		if cfg.Name != "" {
			o.name = cfg.Name
		}
		if cfg.BufferSize > 0 {
			o.bufferSize = cfg.BufferSize
		}
	}
}

// --- Constructor ---

// New bridges a push-based publisher into a pull-based stream. Subscription
// happens eagerly; the first Request is issued by the first Next call, so a
// well-behaved publisher produces nothing until the consumer pulls.
func New[T any](p rx.Publisher[T], opts ...Option) *Stream[T] {
	o := options{bufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}

	streamID := uuid.NewString()
	log := o.log
	if log == nil {
		log = logger.Get("bridge")
	}
	log = log.WithStream(streamID)
	if o.name != "" {
		log = log.WithFields(map[string]any{logger.FieldOperation: o.name})
	}

	sub := newSubscriber[T](streamID, o.bufferSize, log, o.metrics)
	s := &Stream[T]{
		streamID: streamID,
		buffer:   o.bufferSize,
		log:      log,
		sub:      sub,
	}
	subscribe(p, sub)
	return s
}

// Sequence wraps New in a pipeline, so a publisher composes directly with
// Map, Filter, Take and the other operators.
func Sequence[T any](p rx.Publisher[T], opts ...Option) *pipeline.Pipeline[T] {
	return pipeline.From[T](New(p, opts...))
}

// subscribe hands the adapter to the publisher. A panicking Subscribe is a
// publisher defect and fails the stream instead of the caller.
func subscribe[T any](p rx.Publisher[T], sub *subscriber[T]) {
	defer func() {
		if r := recover(); r != nil {
			sub.fail(errors.Internal(fmt.Errorf("panic in Subscribe: %v", r)))
		}
	}()
	p.Subscribe(sub)
}
