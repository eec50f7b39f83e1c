package main

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/workload"
)

func (s *session) report(results []workload.Result) error {
	fmt.Fprintf(s.out, "== %s: %s\n", s.scenario.Name, s.scenario.Description)

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "rank\tfinish (s)\tops\tprotocols")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.9f\t%d\t%s\n",
			r.Rank, float64(r.FinishTime), r.OpsDone, protocolList(r))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	w = tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "endpoint\tpasses\tmissed\textra\tshort bufs\tbytes sent")
	for i := 0; i < s.fabric.NumEndpoints(); i++ {
		nid := ctrlmsg.NID(i)
		pq := s.fabric.ProcessQueues(nid)
		stats := pq.InterruptStats()
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n",
			pq.Name(), stats.Passes, stats.Missed, stats.ExtraPasses,
			pq.Finish().PostedShortBufs,
			s.fabric.Endpoint(nid).Stats().BytesSent)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if s.opts.traceSummary {
		s.reportTraces()
	}

	if s.opts.metricsSummary {
		return s.reportMetrics()
	}

	return nil
}

func protocolList(r workload.Result) string {
	slots := make([]int, 0, len(r.Protocols))
	for slot := range r.Protocols {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	list := ""
	for i, slot := range slots {
		if i > 0 {
			list += ","
		}
		list += r.Protocols[slot]
	}

	if list == "" {
		return "-"
	}

	return list
}

func (s *session) reportTraces() {
	fmt.Fprintf(s.out, "sends: %d, average %.9f s\n",
		s.sendTime.TotalCount(), float64(s.sendTime.AverageTime()))
	fmt.Fprintf(s.out, "recvs: %d, average %.9f s\n",
		s.recvTime.TotalCount(), float64(s.recvTime.AverageTime()))
	fmt.Fprintf(s.out, "nic busy: %.9f s\n", float64(s.nicTime.TotalTime()))

	for _, step := range s.stepCount.GetStepNames() {
		fmt.Fprintf(s.out, "step %s: %d times in %d tasks\n",
			step, s.stepCount.GetStepCount(step),
			s.stepCount.GetTaskCount(step))
	}
}

func (s *session) reportMetrics() error {
	ctx := context.Background()

	var rm metricdata.ResourceMetrics
	if err := s.reader.Collect(ctx, &rm); err != nil {
		return err
	}

	totals := make(map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(s.out, "%s %d\n", name, totals[name])
	}

	return s.provider.Shutdown(ctx)
}
