package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/nicmsg/ctrlmsg"
)

// PrometheusOptions configures NewPrometheus.
type PrometheusOptions struct {
	Registerer  prometheus.Registerer
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
}

var _ ctrlmsg.MetricHook = (*Prometheus)(nil)

// Prometheus implements ctrlmsg.MetricHook with Prometheus counters.
type Prometheus struct {
	sendCompleted   *prometheus.CounterVec
	recvCompleted   *prometheus.CounterVec
	unexpected      *prometheus.CounterVec
	interruptPass   *prometheus.CounterVec
	interruptMissed *prometheus.CounterVec
}

// NewPrometheus creates the counters and registers them. Counters that are
// already registered are reused.
func NewPrometheus(opts PrometheusOptions) (*Prometheus, error) {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	counter := func(name, help string, keys []string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: opts.ConstLabels,
		}, keys)
	}

	p := &Prometheus{
		sendCompleted: counter("nicmsg_send_completed_total",
			"Number of completed send requests", protocolLabelKeys),
		recvCompleted: counter("nicmsg_recv_completed_total",
			"Number of completed receive requests", protocolLabelKeys),
		unexpected: counter("nicmsg_unexpected_messages_total",
			"Number of messages queued before a receive matched them",
			protocolLabelKeys),
		interruptPass: counter("nicmsg_interrupt_passes_total",
			"Number of interrupt service passes", nodeLabelKeys),
		interruptMissed: counter("nicmsg_interrupt_missed_total",
			"Number of interrupts raised while no pass could start",
			nodeLabelKeys),
	}

	var err error
	if p.sendCompleted, err = registerCounterVec(reg, p.sendCompleted); err != nil {
		return nil, err
	}
	if p.recvCompleted, err = registerCounterVec(reg, p.recvCompleted); err != nil {
		return nil, err
	}
	if p.unexpected, err = registerCounterVec(reg, p.unexpected); err != nil {
		return nil, err
	}
	if p.interruptPass, err = registerCounterVec(reg, p.interruptPass); err != nil {
		return nil, err
	}
	if p.interruptMissed, err = registerCounterVec(reg, p.interruptMissed); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Prometheus) SendCompleted(attrs map[string]string) {
	p.sendCompleted.With(labels(attrs, protocolLabelKeys...)).Inc()
}

func (p *Prometheus) RecvCompleted(attrs map[string]string) {
	p.recvCompleted.With(labels(attrs, protocolLabelKeys...)).Inc()
}

func (p *Prometheus) UnexpectedMessage(attrs map[string]string) {
	p.unexpected.With(labels(attrs, protocolLabelKeys...)).Inc()
}

func (p *Prometheus) InterruptPass(attrs map[string]string) {
	p.interruptPass.With(labels(attrs, nodeLabelKeys...)).Inc()
}

func (p *Prometheus) InterruptMissed(attrs map[string]string) {
	p.interruptMissed.With(labels(attrs, nodeLabelKeys...)).Inc()
}

func registerCounterVec(
	reg prometheus.Registerer,
	vec *prometheus.CounterVec,
) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}

		return nil, err
	}

	return vec, nil
}

func labels(attrs map[string]string, keys ...string) prometheus.Labels {
	labs := make(prometheus.Labels, len(keys))
	for _, key := range keys {
		labs[key] = attrs[key]
	}

	return labs
}
