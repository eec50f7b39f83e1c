package tracing

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/nicmsg/datarecording"
	"github.com/sarchlab/nicmsg/sim"
)

var _ = Describe("TraceReader", func() {
	var (
		timeTeller *testTimeTeller
		db         *sql.DB
		recorder   datarecording.DataRecorder
		tracer     *DBTracer
		reader     *TraceReader
	)

	record := func(id, kind, where string, start, end sim.VTimeInSec) {
		timeTeller.currentTime = start
		tracer.StartTask(Task{ID: id, Kind: kind, What: kind, Location: where})
		tracer.StepTask(Task{ID: id, Steps: []TaskStep{{What: "matched"}}})

		timeTeller.currentTime = end
		tracer.EndTask(Task{ID: id})
	}

	BeforeEach(func() {
		var err error

		db, err = sql.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())
		db.SetMaxOpenConns(1)

		timeTeller = &testTimeTeller{}
		recorder = datarecording.NewWithDB(db)
		tracer = NewDBTracer(timeTeller, recorder)
		reader = NewTraceReader(db)

		record("a", "send", "Node[1]", 1, 2)
		record("b", "recv", "Node[0]", 1, 5)
		record("c", "send", "Node[1]", 3, 7)
		recorder.Flush()
	})

	AfterEach(func() {
		recorder.Close()
	})

	It("should list locations", func() {
		locations, err := reader.ListLocations()

		Expect(err).NotTo(HaveOccurred())
		Expect(locations).To(Equal([]string{"Node[0]", "Node[1]"}))
	})

	It("should filter tasks", func() {
		tasks, err := reader.ListTasks(TaskQuery{Kind: "send"})

		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(HaveLen(2))
		Expect(tasks[0].ID).To(Equal("a"))
		Expect(tasks[1].ID).To(Equal("c"))
		Expect(tasks[1].StartTime).To(Equal(sim.VTimeInSec(3)))
		Expect(tasks[1].EndTime).To(Equal(sim.VTimeInSec(7)))
		Expect(tasks[0].Steps).To(BeEmpty())
	})

	It("should select the tasks overlapping a time range", func() {
		tasks, err := reader.ListTasks(TaskQuery{
			EnableTimeRange: true,
			StartTime:       4,
			EndTime:         6,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(HaveLen(2))
		Expect(tasks[0].ID).To(Equal("b"))
		Expect(tasks[1].ID).To(Equal("c"))
	})

	It("should load steps", func() {
		tasks, err := reader.ListTasks(TaskQuery{ID: "b", EnableSteps: true})

		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(HaveLen(1))
		Expect(tasks[0].Steps).To(HaveLen(1))
		Expect(tasks[0].Steps[0].What).To(Equal("matched"))
		Expect(tasks[0].Steps[0].Time).To(Equal(sim.VTimeInSec(1)))
	})

	It("should summarize by location and kind", func() {
		summaries, err := reader.Summarize()

		Expect(err).NotTo(HaveOccurred())
		Expect(summaries).To(HaveLen(2))
		Expect(summaries[1].Location).To(Equal("Node[1]"))
		Expect(summaries[1].Kind).To(Equal("send"))
		Expect(summaries[1].Count).To(Equal(2))
		Expect(summaries[1].AverageTime).To(BeNumerically("~", 2.5))
		Expect(summaries[1].MaxTime).To(BeNumerically("~", 4))
	})

	It("should fail to open a missing file", func() {
		_, err := OpenTraceReader("/nonexistent/trace.sqlite3")

		Expect(err).To(HaveOccurred())
	})
})
