package ctrlmsg

import (
	"log"

	"go.uber.org/zap"
)

// InterruptStats counts what the interrupt coalescer has done.
type InterruptStats struct {
	// Passes is the number of service passes started.
	Passes uint64

	// Missed is the number of raises that could not start a pass.
	Missed uint64

	// ExtraPasses is the number of passes started because a raise was
	// missed earlier.
	ExtraPasses uint64
}

// interruptCoalescer holds the single waiter that an interrupt can wake up.
// A pass is active while the interrupt stack is not empty.
type interruptCoalescer struct {
	armed  *step
	missed bool
	stats  InterruptStats
}

// raise reports that new work may exist. It starts a service pass if a waiter
// is armed and no pass is running. Otherwise, it remembers that the event was
// missed.
func (p *ProcessQueues) raise() {
	if p.intr.armed == nil || p.intStack.len() > 0 {
		if !p.intr.missed {
			p.logger.Debug("interrupt missed",
				zap.Bool("armed", p.intr.armed != nil),
				zap.Int("int_stack", p.intStack.len()))
		}

		p.intr.missed = true
		p.intr.stats.Missed++
		p.report(p.metricHook.InterruptMissed, "")

		return
	}

	p.startPass()
}

// arm parks the wait step until an interrupt arrives. If an event was missed
// while nobody waited, a pass starts right away.
func (p *ProcessQueues) arm(w *step) {
	p.mainStack.mustBeEmpty("arming a wait")

	if p.intr.armed != nil {
		log.Panicf("%s: a wait is already armed", p.name)
	}

	p.intr.armed = w

	if p.intr.missed && p.intStack.len() == 0 {
		p.intr.missed = false
		p.intr.stats.ExtraPasses++
		p.startPass()
	}
}

func (p *ProcessQueues) startPass() {
	p.mainStack.mustBeEmpty("starting an interrupt pass")

	p.intr.stats.Passes++
	p.report(p.metricHook.InterruptPass, "")

	p.intStack.push(&step{kind: stepInterrupt})
	p.processQueues(&p.intStack)
}

// passDone is resumed when a service pass has drained the queues. It wakes
// up the armed waiter, which either returns or arms itself again.
func (p *ProcessQueues) passDone(stack *callStack) {
	if stack.len() != 1 {
		log.Panicf("%s: interrupt stack holds %d steps at the end of a pass",
			p.name, stack.len())
	}

	stack.pop()

	w := p.intr.armed
	if w == nil {
		log.Panicf("%s: a pass ended without an armed wait", p.name)
	}

	p.intr.armed = nil

	p.checkWait(w)
}

// InterruptStats returns the counters of the interrupt coalescer.
func (p *ProcessQueues) InterruptStats() InterruptStats {
	return p.intr.stats
}
