package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarchlab/nicmsg/workload"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run reference scenarios.",
	Long: "Run the named reference scenarios, or all of them if none is " +
		"named. `nicmsg list` shows the scenarios.",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, err := selectScenarios(args)
		if err != nil {
			return err
		}

		return runScenarios(opts, scenarios, cmd.OutOrStdout())
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the reference scenarios.",
	Run: func(cmd *cobra.Command, _ []string) {
		catalog := workload.Catalog()
		for _, name := range workload.Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n",
				name, catalog[name].Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

func selectScenarios(names []string) ([]workload.Scenario, error) {
	catalog := workload.Catalog()

	if len(names) == 0 {
		names = workload.Names()
	}

	scenarios := make([]workload.Scenario, 0, len(names))
	for _, name := range names {
		s, ok := catalog[name]
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q, known scenarios: %v",
				name, workload.Names())
		}

		scenarios = append(scenarios, s)
	}

	return scenarios, nil
}

func runScenarios(o options, scenarios []workload.Scenario, out io.Writer) error {
	logger, err := newLogger(o.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	for _, s := range scenarios {
		if err := runScenario(o, s, logger, out); err != nil {
			return err
		}
	}

	return nil
}

func runScenario(
	o options,
	s workload.Scenario,
	logger *zap.Logger,
	out io.Writer,
) error {
	ss, err := newSession(o, s, logger, out)
	if err != nil {
		return err
	}
	defer ss.close()

	results, err := ss.run()
	if err != nil {
		return err
	}

	return ss.report(results)
}
