package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/nicmsg/sim"
)

var _ = Describe("Api", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *MockNamedHookable
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = NewMockNamedHookable(mockCtrl)
		domain.EXPECT().NumHooks().Return(1).AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should panic if ID is not given", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("", "123", domain, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should be panic if domain is nil.", func() {
		Expect(func() {
			StartTask("id", "123", nil, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should be panic if domain's name is empty.", func() {
		domain.EXPECT().Name().Return("").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should be panic if kind is empty.", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "", "what", nil)
		}).Should(Panic())
	})

	It("should be panic if what is empty.", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "kind", "", nil)
		}).Should(Panic())
	})

	It("should invoke the hooks with the task", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		domain.EXPECT().
			InvokeHook(gomock.Any()).
			Do(func(ctx sim.HookCtx) {
				Expect(ctx.Pos).To(Equal(HookPosTaskStart))
				task := ctx.Item.(Task)
				Expect(task.ID).To(Equal("id"))
				Expect(task.ParentID).To(Equal("123"))
				Expect(task.Location).To(Equal("domain"))
			})

		StartTask("id", "123", domain, "kind", "what", nil)
	})

	It("should carry the step name", func() {
		domain.EXPECT().
			InvokeHook(gomock.Any()).
			Do(func(ctx sim.HookCtx) {
				Expect(ctx.Pos).To(Equal(HookPosTaskStep))
				task := ctx.Item.(Task)
				Expect(task.Steps).To(HaveLen(1))
				Expect(task.Steps[0].What).To(Equal("matched"))
			})

		AddTaskStep("id", domain, "matched")
	})

	It("should not invoke hooks when there are none", func() {
		quiet := NewMockNamedHookable(mockCtrl)
		quiet.EXPECT().NumHooks().Return(0).AnyTimes()
		quiet.EXPECT().Name().Return("quiet").AnyTimes()

		StartTask("id", "", quiet, "kind", "what", nil)
		AddTaskStep("id", quiet, "step")
		EndTask("id", quiet)
	})
})

var _ = Describe("CollectTrace", func() {
	var (
		mockCtrl *gomock.Controller
		tracer   *MockTracer
		domain   *sim.HookableBase
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		tracer = NewMockTracer(mockCtrl)
		domain = &sim.HookableBase{}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should forward the hook positions to the tracer", func() {
		d := &namedDomain{HookableBase: domain, name: "domain"}
		CollectTrace(d, tracer)

		tracer.EXPECT().StartTask(gomock.Any())
		tracer.EXPECT().StepTask(gomock.Any())
		tracer.EXPECT().EndTask(gomock.Any())

		StartTask("1", "", d, "kind", "what", nil)
		AddTaskStep("1", d, "step")
		EndTask("1", d)
	})

	It("should panic if the tracer is attached twice", func() {
		d := &namedDomain{HookableBase: domain, name: "domain"}
		CollectTrace(d, tracer)

		Expect(func() { CollectTrace(d, tracer) }).To(Panic())
	})
})

type namedDomain struct {
	*sim.HookableBase
	name string
}

func (d *namedDomain) Name() string {
	return d.name
}
