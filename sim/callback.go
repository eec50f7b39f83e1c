package sim

// CallbackEvent is an event that invokes a function when it is handled.
type CallbackEvent struct {
	*EventBase
	fn func()
}

// CallbackScheduler turns "call this function after a delay" into events on
// an engine. It is the only way that the message layer moves time forward.
type CallbackScheduler struct {
	engine EventScheduler
}

// NewCallbackScheduler creates a CallbackScheduler that schedules events on
// the given engine.
func NewCallbackScheduler(engine EventScheduler) *CallbackScheduler {
	return &CallbackScheduler{engine: engine}
}

// SchedCallback invokes fn after the given delay. A zero delay still goes
// through the engine, so fn never runs inside the caller's stack frame.
func (s *CallbackScheduler) SchedCallback(fn func(), delay VTimeInSec) {
	if fn == nil {
		panic("callback must not be nil")
	}

	if delay < 0 {
		panic("callback delay must not be negative")
	}

	evt := &CallbackEvent{
		EventBase: NewEventBase(s.engine.CurrentTime()+delay, s),
		fn:        fn,
	}
	s.engine.Schedule(evt)
}

// CurrentTime returns the time of the underlying engine.
func (s *CallbackScheduler) CurrentTime() VTimeInSec {
	return s.engine.CurrentTime()
}

// Handle runs the function carried by a CallbackEvent.
func (s *CallbackScheduler) Handle(e Event) error {
	evt, ok := e.(*CallbackEvent)
	if !ok {
		panic("CallbackScheduler can only handle CallbackEvent")
	}

	fn := evt.fn
	evt.fn = nil
	fn()

	return nil
}
