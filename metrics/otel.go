package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/sarchlab/nicmsg/ctrlmsg"
)

const defaultInstrumentationName = "github.com/sarchlab/nicmsg/metrics"

// OTelOptions configures NewOTel.
type OTelOptions struct {
	MeterProvider          metric.MeterProvider
	Meter                  metric.Meter
	InstrumentationName    string
	InstrumentationVersion string
}

var _ ctrlmsg.MetricHook = (*OTel)(nil)

// OTel implements ctrlmsg.MetricHook with OpenTelemetry counters.
type OTel struct {
	meter           metric.Meter
	sendCompleted   metric.Int64Counter
	recvCompleted   metric.Int64Counter
	unexpected      metric.Int64Counter
	interruptPass   metric.Int64Counter
	interruptMissed metric.Int64Counter
}

// NewOTel creates the counters on the meter. Without a meter, one is taken
// from the provider, or from the global provider.
func NewOTel(opts OTelOptions) (*OTel, error) {
	meter := opts.Meter
	if meter == nil {
		provider := opts.MeterProvider
		if provider == nil {
			provider = otel.GetMeterProvider()
		}

		name := opts.InstrumentationName
		if name == "" {
			name = defaultInstrumentationName
		}

		meter = provider.Meter(name,
			metric.WithInstrumentationVersion(opts.InstrumentationVersion))
	}

	o := &OTel{meter: meter}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&o.sendCompleted, "nicmsg.send.completed", "Completed send requests"},
		{&o.recvCompleted, "nicmsg.recv.completed", "Completed receive requests"},
		{&o.unexpected, "nicmsg.unexpected", "Messages queued before a match"},
		{&o.interruptPass, "nicmsg.interrupt.passes", "Interrupt service passes"},
		{&o.interruptMissed, "nicmsg.interrupt.missed", "Interrupts that could not start a pass"},
	}

	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}

		*c.dst = counter
	}

	return o, nil
}

// SendCompleted counts a completed send.
func (o *OTel) SendCompleted(attrs map[string]string) {
	o.sendCompleted.Add(context.Background(), 1,
		metric.WithAttributes(otelAttrsWithProtocol(attrs)...))
}

// RecvCompleted counts a completed receive.
func (o *OTel) RecvCompleted(attrs map[string]string) {
	o.recvCompleted.Add(context.Background(), 1,
		metric.WithAttributes(otelAttrsWithProtocol(attrs)...))
}

// UnexpectedMessage counts a message that no posted receive matched on
// arrival.
func (o *OTel) UnexpectedMessage(attrs map[string]string) {
	o.unexpected.Add(context.Background(), 1,
		metric.WithAttributes(otelAttrsWithProtocol(attrs)...))
}

// InterruptPass counts a service pass.
func (o *OTel) InterruptPass(attrs map[string]string) {
	o.interruptPass.Add(context.Background(), 1,
		metric.WithAttributes(otelAttrs(attrs)...))
}

// InterruptMissed counts an interrupt that found a pass running or no waiter.
func (o *OTel) InterruptMissed(attrs map[string]string) {
	o.interruptMissed.Add(context.Background(), 1,
		metric.WithAttributes(otelAttrs(attrs)...))
}

func otelAttrs(attrs map[string]string) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String(labelNode, attrs[labelNode])}
}

func otelAttrsWithProtocol(attrs map[string]string) []attribute.KeyValue {
	kvs := otelAttrs(attrs)
	if v := attrs[labelProtocol]; v != "" {
		kvs = append(kvs, attribute.String(labelProtocol, v))
	}

	return kvs
}
