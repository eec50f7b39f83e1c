// Command nicmsg runs workloads on a simulated cluster and reports how the
// control-message layer of the NICs behaved.
package main

import "github.com/tebeka/atexit"

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
