package fabric

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/nicmsg/sim"
)

var _ = Describe("LinearCostModel", func() {
	It("should add the fixed and the per-unit part", func() {
		l := Linear{Fixed: 2, PerUnit: 0.5}

		Expect(l.At(0)).To(Equal(sim.VTimeInSec(2)))
		Expect(l.At(4)).To(Equal(sim.VTimeInSec(4)))
	})

	It("should answer with the configured coefficients", func() {
		cfg := DefaultCostConfig()
		cfg.ShortMsgLength = 128
		cfg.Match = Linear{Fixed: 1, PerUnit: 2}
		cfg.TxNic = 3
		cfg.SendAck = 5

		m := NewLinearCostModel(cfg)

		Expect(m.ShortMsgLength()).To(Equal(128))
		Expect(m.MatchDelay(3)).To(Equal(sim.VTimeInSec(7)))
		Expect(m.TxNicDelay()).To(Equal(sim.VTimeInSec(3)))
		Expect(m.SendAckDelay()).To(Equal(sim.VTimeInSec(5)))
		Expect(m.Config()).To(Equal(cfg))
	})

	It("should derive the transfer time from the bandwidth", func() {
		cfg := DefaultCostConfig()
		cfg.BytesPerSecond = 1000

		Expect(NewLinearCostModel(cfg).transferTime(500)).
			To(BeNumerically("~", 0.5, 1e-12))

		cfg.BytesPerSecond = 0
		Expect(NewLinearCostModel(cfg).transferTime(500)).
			To(Equal(sim.VTimeInSec(0)))
	})
})
