package main

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/fabric"
	"github.com/sarchlab/nicmsg/sim"
)

type options struct {
	envFile string
	verbose bool

	shortMsgLength int
	wireLatency    float64
	bandwidth      float64
	minShortBufs   int
	maxShortBufs   int

	logEvents      bool
	traceDB        string
	traceSummary   bool
	metricsSummary bool

	monitor     bool
	monitorPort int
	openBrowser bool
}

var opts options

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nicmsg",
	Short: "nicmsg simulates the control-message layer of HPC NICs.",
	Long: `nicmsg runs send/receive workloads on a simulated cluster and ` +
		`reports how the eager, rendezvous and loopback protocols of the ` +
		`NIC control-message layer behaved. Every flag can also be set ` +
		`with a NICMSG_ environment variable, for example NICMSG_WIRE_LATENCY, ` +
		`or in a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadEnv(cmd.Flags(), opts.envFile,
			cmd.Flags().Changed("env-file"))
	},
}

func init() {
	cost := fabric.DefaultCostConfig()
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&opts.envFile, "env-file", ".env",
		"File to load NICMSG_ environment variables from.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Log every protocol step.")

	flags.IntVar(&opts.shortMsgLength, "short-msg-length", cost.ShortMsgLength,
		"Longest message, in bytes, that is sent with the eager protocol.")
	flags.Float64Var(&opts.wireLatency, "wire-latency", float64(cost.WireLatency),
		"Latency of a link, in seconds.")
	flags.Float64Var(&opts.bandwidth, "bandwidth", cost.BytesPerSecond,
		"Bandwidth of a link, in bytes per second. 0 means unlimited.")
	flags.IntVar(&opts.minShortBufs, "min-short-buffers",
		ctrlmsg.DefaultMinPostedShortBuffers,
		"Number of short buffers that an endpoint keeps posted.")
	flags.IntVar(&opts.maxShortBufs, "max-short-buffers",
		ctrlmsg.DefaultMaxPostedShortBuffers,
		"Most short buffers that an endpoint may have posted.")

	flags.BoolVar(&opts.logEvents, "log-events", false,
		"Log every event that the engine handles.")
	flags.StringVar(&opts.traceDB, "trace-db", "",
		"Record the send, receive and NIC tasks into SQLite files with "+
			"this prefix, one per scenario.")
	flags.BoolVar(&opts.traceSummary, "trace-summary", false,
		"Print the average time of sends and receives.")
	flags.BoolVar(&opts.metricsSummary, "metrics-summary", false,
		"Print the counters of the control-message layer.")

	flags.BoolVar(&opts.monitor, "monitor", false,
		"Serve a web page to inspect the simulation while it runs.")
	flags.IntVar(&opts.monitorPort, "monitor-port", 0,
		"Port of the monitoring server. 0 picks a random port.")
	flags.BoolVar(&opts.openBrowser, "open-browser", false,
		"Open the monitoring page in the default browser.")
}

func (o options) costConfig() fabric.CostConfig {
	cost := fabric.DefaultCostConfig()
	cost.ShortMsgLength = o.shortMsgLength
	cost.WireLatency = sim.VTimeInSec(o.wireLatency)
	cost.BytesPerSecond = o.bandwidth

	return cost
}
