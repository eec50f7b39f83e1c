package workload

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/fabric"
	"github.com/sarchlab/nicmsg/sim"
)

// Run starts one runner for each program on the endpoint with the same
// index, runs the engine until no event is left, and returns what every rank
// did. The onFinish functions are called each time a rank finishes.
func Run(
	engine sim.Engine,
	f *fabric.Fabric,
	programs []Program,
	logger *zap.Logger,
	onFinish ...func(Result),
) ([]Result, error) {
	if len(programs) > f.NumEndpoints() {
		return nil, fmt.Errorf("%d programs do not fit on %d endpoints",
			len(programs), f.NumEndpoints())
	}

	runners := make([]*Runner, 0, len(programs))
	for i, p := range programs {
		nid := ctrlmsg.NID(i)
		rank := f.GroupMap(nid).MyRank(fabric.WorldGroup)
		r := NewRunner(rank, f.ProcessQueues(nid), f.Scheduler(), p, logger)
		for _, fn := range onFinish {
			r.OnFinish(fn)
		}

		runners = append(runners, r)
		r.Start()
	}

	if err := engine.Run(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(runners))
	for _, r := range runners {
		results = append(results, r.Result())
	}

	return results, nil
}

// CheckResults returns an error if a rank did not finish its program or saw
// an unexpected payload.
func CheckResults(results []Result) error {
	for _, r := range results {
		if !r.Finished {
			return fmt.Errorf("rank %d stopped after %d ops",
				r.Rank, r.OpsDone)
		}

		if len(r.Errors) > 0 {
			return r.Errors[0]
		}
	}

	return nil
}
