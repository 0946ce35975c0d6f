package telemetry

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/huynhanx03/go-mq/pkg/mq"
)

// meterName is the instrumentation scope name for queue metrics.
const meterName = "github.com/huynhanx03/go-mq/pkg/mq"

// Register exports the stats of every queue in reg through the global OTel
// MeterProvider. If no MeterProvider is configured, noop instruments are
// used.
//
// Instruments (all carry a "queue" attribute):
//   - mq.queue.size (Int64ObservableGauge): pending messages
//   - mq.queue.capacity (Int64ObservableGauge): bound, 0 when unbounded
//   - mq.queue.waiting (Int64ObservableGauge): parked callers, by "role"
//   - mq.queue.enqueued / mq.queue.dequeued (Int64ObservableCounter)
//   - mq.queue.rejected (Int64ObservableCounter): by "reason" ("full" or "closed")
//   - mq.queue.timeouts (Int64ObservableCounter)
func Register(reg *mq.Registry) (metric.Registration, error) {
	return RegisterWithMeter(otel.Meter(meterName), reg)
}

// RegisterWithMeter is Register with an explicit meter, for tests and for
// hosts that manage their own MeterProvider. Unregister the returned
// registration to stop reporting.
func RegisterWithMeter(meter metric.Meter, reg *mq.Registry) (metric.Registration, error) {
	var (
		i   instruments
		err error
	)

	if i.size, err = meter.Int64ObservableGauge("mq.queue.size",
		metric.WithDescription("Pending messages"), metric.WithUnit("{message}")); err != nil {
		return nil, errors.Wrap(err, "create size gauge")
	}
	if i.capacity, err = meter.Int64ObservableGauge("mq.queue.capacity",
		metric.WithDescription("Queue bound, 0 when unbounded"), metric.WithUnit("{message}")); err != nil {
		return nil, errors.Wrap(err, "create capacity gauge")
	}
	if i.waiting, err = meter.Int64ObservableGauge("mq.queue.waiting",
		metric.WithDescription("Callers parked on the queue"), metric.WithUnit("{caller}")); err != nil {
		return nil, errors.Wrap(err, "create waiting gauge")
	}
	if i.enqueued, err = meter.Int64ObservableCounter("mq.queue.enqueued",
		metric.WithDescription("Messages accepted"), metric.WithUnit("{message}")); err != nil {
		return nil, errors.Wrap(err, "create enqueued counter")
	}
	if i.dequeued, err = meter.Int64ObservableCounter("mq.queue.dequeued",
		metric.WithDescription("Messages delivered"), metric.WithUnit("{message}")); err != nil {
		return nil, errors.Wrap(err, "create dequeued counter")
	}
	if i.rejected, err = meter.Int64ObservableCounter("mq.queue.rejected",
		metric.WithDescription("Enqueues refused"), metric.WithUnit("{message}")); err != nil {
		return nil, errors.Wrap(err, "create rejected counter")
	}
	if i.timeouts, err = meter.Int64ObservableCounter("mq.queue.timeouts",
		metric.WithDescription("Blocking calls that hit their deadline"), metric.WithUnit("{call}")); err != nil {
		return nil, errors.Wrap(err, "create timeouts counter")
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for _, s := range reg.Stats() {
			i.observe(o, s)
		}
		return nil
	}, i.size, i.capacity, i.waiting, i.enqueued, i.dequeued, i.rejected, i.timeouts)
}

type instruments struct {
	size     metric.Int64ObservableGauge
	capacity metric.Int64ObservableGauge
	waiting  metric.Int64ObservableGauge
	enqueued metric.Int64ObservableCounter
	dequeued metric.Int64ObservableCounter
	rejected metric.Int64ObservableCounter
	timeouts metric.Int64ObservableCounter
}

func (i *instruments) observe(o metric.Observer, s mq.Stats) {
	queue := attribute.String("queue", s.Name)
	attrs := metric.WithAttributes(queue)

	o.ObserveInt64(i.size, int64(s.Size), attrs)
	o.ObserveInt64(i.capacity, int64(s.Capacity), attrs)
	o.ObserveInt64(i.waiting, int64(s.WaitingProducers),
		metric.WithAttributes(queue, attribute.String("role", "producer")))
	o.ObserveInt64(i.waiting, int64(s.WaitingConsumers),
		metric.WithAttributes(queue, attribute.String("role", "consumer")))
	o.ObserveInt64(i.enqueued, int64(s.Enqueued), attrs)
	o.ObserveInt64(i.dequeued, int64(s.Dequeued), attrs)
	o.ObserveInt64(i.rejected, int64(s.RejectedFull),
		metric.WithAttributes(queue, attribute.String("reason", "full")))
	o.ObserveInt64(i.rejected, int64(s.RejectedClosed),
		metric.WithAttributes(queue, attribute.String("reason", "closed")))
	o.ObserveInt64(i.timeouts, int64(s.Timeouts), attrs)
}
