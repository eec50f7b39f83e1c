package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const envPrefix = "NICMSG_"

// envName returns the environment variable that sets a flag.
func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// loadEnv loads the env file into the environment and applies the NICMSG_
// variables to the flags that are not set on the command line. A missing env
// file is only an error if it was asked for.
func loadEnv(flags *pflag.FlagSet, envFile string, required bool) error {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && (required || !errors.Is(err, fs.ErrNotExist)) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "env-file" {
			return
		}

		value, ok := os.LookupEnv(envName(f.Name))
		if !ok {
			return
		}

		if err := flags.Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", envName(f.Name), err))
		}
	})

	return errors.Join(errs...)
}
