package fabric

import (
	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/sim"
)

// Linear is a cost that has a fixed part and a part that grows with the
// number of units, usually bytes.
type Linear struct {
	Fixed   sim.VTimeInSec
	PerUnit sim.VTimeInSec
}

// At returns the cost of n units.
func (l Linear) At(n int) sim.VTimeInSec {
	return l.Fixed + l.PerUnit*sim.VTimeInSec(n)
}

// CostConfig holds the coefficients of the linear cost model.
type CostConfig struct {
	ShortMsgLength int

	Tx          Linear
	TxNic       sim.VTimeInSec
	TxMemcpy    Linear
	Rx          Linear
	RxNic       sim.VTimeInSec
	RxMemcpy    Linear
	RxPost      Linear
	RegRegion   Linear
	Match       Linear
	SendFini    Linear
	RecvFini    Linear
	SendAck     sim.VTimeInSec
	WireLatency sim.VTimeInSec

	// BytesPerSecond is the bandwidth of the links. Zero means that the
	// size of a transfer does not add to its latency.
	BytesPerSecond float64
}

// DefaultCostConfig returns the costs of a NIC with a 4 KB eager threshold,
// in the same order of magnitude as a modern HPC interconnect.
func DefaultCostConfig() CostConfig {
	return CostConfig{
		ShortMsgLength: 4096,
		Tx:             Linear{Fixed: 50e-9},
		TxNic:          100e-9,
		TxMemcpy:       Linear{Fixed: 10e-9, PerUnit: 0.1e-9},
		Rx:             Linear{Fixed: 50e-9},
		RxNic:          100e-9,
		RxMemcpy:       Linear{Fixed: 10e-9, PerUnit: 0.1e-9},
		RxPost:         Linear{Fixed: 20e-9},
		RegRegion:      Linear{Fixed: 200e-9, PerUnit: 0.01e-9},
		Match:          Linear{Fixed: 10e-9, PerUnit: 5e-9},
		SendFini:       Linear{Fixed: 20e-9},
		RecvFini:       Linear{Fixed: 20e-9},
		SendAck:        50e-9,
		WireLatency:    500e-9,
		BytesPerSecond: 12.5e9,
	}
}

// LinearCostModel implements ctrlmsg.CostModel with linear costs.
type LinearCostModel struct {
	cfg CostConfig
}

var _ ctrlmsg.CostModel = LinearCostModel{}

// NewLinearCostModel creates a cost model from the config.
func NewLinearCostModel(cfg CostConfig) LinearCostModel {
	return LinearCostModel{cfg: cfg}
}

// Config returns the coefficients of the model.
func (m LinearCostModel) Config() CostConfig {
	return m.cfg
}

func (m LinearCostModel) ShortMsgLength() int {
	return m.cfg.ShortMsgLength
}

func (m LinearCostModel) TxDelay(length int) sim.VTimeInSec {
	return m.cfg.Tx.At(length)
}

func (m LinearCostModel) TxNicDelay() sim.VTimeInSec {
	return m.cfg.TxNic
}

func (m LinearCostModel) TxMemcpyDelay(length int) sim.VTimeInSec {
	return m.cfg.TxMemcpy.At(length)
}

func (m LinearCostModel) RxDelay(length int) sim.VTimeInSec {
	return m.cfg.Rx.At(length)
}

func (m LinearCostModel) RxNicDelay() sim.VTimeInSec {
	return m.cfg.RxNic
}

func (m LinearCostModel) RxMemcpyDelay(length int) sim.VTimeInSec {
	return m.cfg.RxMemcpy.At(length)
}

func (m LinearCostModel) RxPostDelay(length int) sim.VTimeInSec {
	return m.cfg.RxPost.At(length)
}

func (m LinearCostModel) RegRegionDelay(length int) sim.VTimeInSec {
	return m.cfg.RegRegion.At(length)
}

func (m LinearCostModel) MatchDelay(numScanned int) sim.VTimeInSec {
	return m.cfg.Match.At(numScanned)
}

func (m LinearCostModel) SendReqFiniDelay(length int) sim.VTimeInSec {
	return m.cfg.SendFini.At(length)
}

func (m LinearCostModel) RecvReqFiniDelay(length int) sim.VTimeInSec {
	return m.cfg.RecvFini.At(length)
}

func (m LinearCostModel) SendAckDelay() sim.VTimeInSec {
	return m.cfg.SendAck
}

// transferTime returns the time that length bytes take on a link.
func (m LinearCostModel) transferTime(length int) sim.VTimeInSec {
	if m.cfg.BytesPerSecond <= 0 {
		return 0
	}

	return sim.VTimeInSec(float64(length) / m.cfg.BytesPerSecond)
}
