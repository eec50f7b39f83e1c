// Package metrics exports the events of the control-message layer as
// Prometheus or OpenTelemetry counters.
package metrics

import "github.com/sarchlab/nicmsg/ctrlmsg"

const (
	labelNode     = "node"
	labelProtocol = "protocol"
)

var (
	nodeLabelKeys     = []string{labelNode}
	protocolLabelKeys = []string{labelNode, labelProtocol}
)

// Multi forwards every event to all the hooks.
type Multi []ctrlmsg.MetricHook

var _ ctrlmsg.MetricHook = Multi(nil)

func (m Multi) SendCompleted(attrs map[string]string) {
	for _, h := range m {
		h.SendCompleted(attrs)
	}
}

func (m Multi) RecvCompleted(attrs map[string]string) {
	for _, h := range m {
		h.RecvCompleted(attrs)
	}
}

func (m Multi) UnexpectedMessage(attrs map[string]string) {
	for _, h := range m {
		h.UnexpectedMessage(attrs)
	}
}

func (m Multi) InterruptPass(attrs map[string]string) {
	for _, h := range m {
		h.InterruptPass(attrs)
	}
}

func (m Multi) InterruptMissed(attrs map[string]string) {
	for _, h := range m {
		h.InterruptMissed(attrs)
	}
}
