package ctrlmsg

import "log"

type stepKind int

const (
	stepWait stepKind = iota
	stepProcessQueues
	stepInterrupt
	stepShortList
	stepLongGetFini
)

func (k stepKind) String() string {
	switch k {
	case stepWait:
		return "wait"
	case stepProcessQueues:
		return "process_queues"
	case stepInterrupt:
		return "interrupt"
	case stepShortList:
		return "short_list"
	case stepLongGetFini:
		return "long_get_fini"
	default:
		return "unknown"
	}
}

type shortListPhase int

const (
	phaseSearch shortListPhase = iota
	phaseCopy
	phaseComplete
)

// A step is a suspended piece of work. Which fields are used depends on the
// kind of the step.
type step struct {
	kind stepKind

	// stepWait
	wait *WaitReq
	ret  func()

	// stepShortList
	list      []*message
	idx       int
	phase     shortListPhase
	matched   *CommReq
	unmatched []*message

	// stepLongGetFini
	req *CommReq
}

func newWaitStep(wait *WaitReq, ret func()) *step {
	return &step{kind: stepWait, wait: wait, ret: ret}
}

func newShortListStep(list []*message) *step {
	return &step{kind: stepShortList, list: list}
}

func newLongGetFiniStep(req *CommReq) *step {
	return &step{kind: stepLongGetFini, req: req}
}

// current returns the message that the short list step works on.
func (s *step) current() *message {
	return s.list[s.idx]
}

// callStack is a last-in-first-out stack of suspended steps.
type callStack struct {
	name  string
	steps []*step
}

func (s *callStack) push(st *step) {
	s.steps = append(s.steps, st)
}

func (s *callStack) pop() *step {
	if len(s.steps) == 0 {
		log.Panicf("pop from empty %s stack", s.name)
	}

	st := s.steps[len(s.steps)-1]
	s.steps[len(s.steps)-1] = nil
	s.steps = s.steps[:len(s.steps)-1]

	return st
}

func (s *callStack) top() *step {
	if len(s.steps) == 0 {
		log.Panicf("top of empty %s stack", s.name)
	}

	return s.steps[len(s.steps)-1]
}

func (s *callStack) len() int {
	return len(s.steps)
}

func (s *callStack) mustBeEmpty(when string) {
	if len(s.steps) != 0 {
		log.Panicf("%s stack holds %d steps when %s, top is %s",
			s.name, len(s.steps), when, s.steps[len(s.steps)-1].kind)
	}
}
