package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/nicmsg/tracing"
)

var traceOpts struct {
	kind     string
	location string
	tasks    bool
}

var traceCmd = &cobra.Command{
	Use:   "trace <file.sqlite3>",
	Short: "Summarize a trace database written with --trace-db.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := tracing.OpenTraceReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		return printTrace(reader, cmd.OutOrStdout())
	},
}

func init() {
	flags := traceCmd.Flags()
	flags.StringVar(&traceOpts.kind, "kind", "",
		"only list tasks of this kind (send, recv, nic)")
	flags.StringVar(&traceOpts.location, "location", "",
		"only list tasks at this component")
	flags.BoolVar(&traceOpts.tasks, "tasks", false,
		"list the individual tasks with their steps")

	rootCmd.AddCommand(traceCmd)
}

func printTrace(reader *tracing.TraceReader, out io.Writer) error {
	summaries, err := reader.Summarize()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "location\tkind\tcount\tavg (s)\tmax (s)")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.9f\t%.9f\n",
			s.Location, s.Kind, s.Count,
			float64(s.AverageTime), float64(s.MaxTime))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !traceOpts.tasks {
		return nil
	}

	tasks, err := reader.ListTasks(tracing.TaskQuery{
		Kind:        traceOpts.kind,
		Location:    traceOpts.location,
		EnableSteps: true,
	})
	if err != nil {
		return err
	}

	for _, t := range tasks {
		fmt.Fprintf(out, "%.9f-%.9f %s %s %s\n",
			float64(t.StartTime), float64(t.EndTime), t.Location, t.Kind, t.What)
		for _, step := range t.Steps {
			fmt.Fprintf(out, "  %.9f %s\n", float64(step.Time), step.What)
		}
	}

	return nil
}
