package main

import (
	"bytes"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/workload"
)

func testOptions() options {
	return options{
		shortMsgLength: 4096,
		wireLatency:    500e-9,
		bandwidth:      12.5e9,
		minShortBufs:   ctrlmsg.DefaultMinPostedShortBuffers,
		maxShortBufs:   ctrlmsg.DefaultMaxPostedShortBuffers,
		traceSummary:   true,
		metricsSummary: true,
	}
}

var _ = Describe("Commands", func() {
	It("should select all scenarios by default", func() {
		scenarios, err := selectScenarios(nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(scenarios).To(HaveLen(5))
	})

	It("should reject unknown scenarios", func() {
		_, err := selectScenarios([]string{"eager", "broadcast"})

		Expect(err).To(MatchError(ContainSubstring("broadcast")))
	})

	It("should take the cost model from the options", func() {
		o := testOptions()
		o.shortMsgLength = 128
		o.bandwidth = 0

		cost := o.costConfig()

		Expect(cost.ShortMsgLength).To(Equal(128))
		Expect(cost.BytesPerSecond).To(BeZero())
	})

	It("should report a scenario", func() {
		scenarios, err := selectScenarios([]string{"eager"})
		Expect(err).NotTo(HaveOccurred())

		out := new(bytes.Buffer)
		Expect(runScenarios(testOptions(), scenarios, out)).To(Succeed())

		Expect(out.String()).To(ContainSubstring("== eager"))
		Expect(out.String()).To(ContainSubstring("Cluster.Node[0].Core[0].CtrlMsg"))
		Expect(out.String()).To(ContainSubstring("sends: 1"))
		Expect(out.String()).To(ContainSubstring("nicmsg.send.completed 1"))
		Expect(out.String()).To(ContainSubstring("nicmsg.recv.completed 1"))
	})

	It("should fail when a scenario does not hold", func() {
		s := workload.EagerMatch()
		s.Programs[0].Ops[0].Expect = workload.Pattern(40, 99)

		err := runScenarios(testOptions(), []workload.Scenario{s}, new(bytes.Buffer))

		Expect(err).To(MatchError(ContainSubstring("scenario eager")))
	})

	It("should list the scenarios", func() {
		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetArgs([]string{"list"})

		Expect(rootCmd.Execute()).To(Succeed())

		Expect(out.String()).To(ContainSubstring("rendezvous"))
		Expect(out.String()).To(ContainSubstring("burst"))
	})

	It("should run ping-pong", func() {
		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetArgs([]string{"pingpong", "--iterations", "2", "--size", "64",
			"--nodes", "2", "--cores", "1"})

		Expect(rootCmd.Execute()).To(Succeed())

		Expect(out.String()).To(ContainSubstring("round trip:"))
	})

	It("should refuse ping-pong on one endpoint", func() {
		rootCmd.SetOut(new(bytes.Buffer))
		rootCmd.SetErr(new(bytes.Buffer))
		rootCmd.SetArgs([]string{"pingpong", "--nodes", "1", "--cores", "1"})

		Expect(rootCmd.Execute()).To(HaveOccurred())
	})

	It("should read back a recorded trace", func() {
		o := testOptions()
		o.traceDB = filepath.Join(GinkgoT().TempDir(), "trace")

		scenarios, err := selectScenarios([]string{"eager"})
		Expect(err).NotTo(HaveOccurred())
		Expect(runScenarios(o, scenarios, new(bytes.Buffer))).To(Succeed())

		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetArgs([]string{"trace", o.traceDB + "_eager.sqlite3",
			"--tasks", "--kind", "recv"})

		Expect(rootCmd.Execute()).To(Succeed())

		Expect(out.String()).To(ContainSubstring("location"))
		Expect(out.String()).To(ContainSubstring("send"))
		Expect(out.String()).To(ContainSubstring(" recv "))
	})

	It("should fail on a missing trace", func() {
		rootCmd.SetOut(new(bytes.Buffer))
		rootCmd.SetErr(new(bytes.Buffer))
		rootCmd.SetArgs([]string{"trace",
			filepath.Join(GinkgoT().TempDir(), "none.sqlite3")})

		Expect(rootCmd.Execute()).To(HaveOccurred())
	})
})
