package cmd

import (
	"fmt"
	"os"

	"github.com/google/shlex"
)

// Environment variables holding default arguments
const (
	GrinArgsEnv  = "GRIN_ARGS"
	GrindArgsEnv = "GRIND_ARGS"
)

// EnvArgs returns the shell-split value of the environment variable name
// followed by args, so explicit arguments can override the defaults.
func EnvArgs(name string, args []string) ([]string, error) {
	value := os.Getenv(name)
	if value == "" {
		return args, nil
	}

	extra, err := shlex.Split(value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	full := make([]string, 0, len(extra)+len(args))
	full = append(full, extra...)
	return append(full, args...), nil
}
