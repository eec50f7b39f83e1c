package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/nicmsg/workload"
)

var pingPongOpts struct {
	iterations int
	size       int
	nodes      int
	cores      int
}

var pingPongCmd = &cobra.Command{
	Use:   "pingpong",
	Short: "Bounce a message between rank 0 and rank 1.",
	Long: "Bounce a message between rank 0 and rank 1 and report the " +
		"average round-trip time. With one node and two cores, the " +
		"ranks talk through the loopback path.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := pingPongOpts
		if p.nodes*p.cores < 2 {
			return fmt.Errorf("ping-pong needs at least two endpoints, got %d",
				p.nodes*p.cores)
		}

		if p.iterations <= 0 || p.size < 0 {
			return fmt.Errorf("invalid ping-pong: %d iterations of %d bytes",
				p.iterations, p.size)
		}

		s := workload.PingPong(p.iterations, p.size)
		s.NumNodes = p.nodes
		s.CoresPerNode = p.cores

		logger, err := newLogger(opts.verbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ss, err := newSession(opts, s, logger, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer ss.close()

		results, err := ss.run()
		if err != nil {
			return err
		}

		if err := ss.report(results); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "round trip: %.9f s\n",
			float64(workload.RoundTripTime(results, p.iterations)))

		return nil
	},
}

func init() {
	flags := pingPongCmd.Flags()
	flags.IntVar(&pingPongOpts.iterations, "iterations", 10,
		"Number of round trips.")
	flags.IntVar(&pingPongOpts.size, "size", 1024,
		"Message size in bytes.")
	flags.IntVar(&pingPongOpts.nodes, "nodes", 2, "Number of nodes.")
	flags.IntVar(&pingPongOpts.cores, "cores", 1, "Number of cores per node.")

	rootCmd.AddCommand(pingPongCmd)
}
