package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Environment passed to extensions, with the values of the global flags.
const (
	EnvUser    = "STACKER_USER"
	EnvStore   = "STACKER_STORE"
	EnvData    = "STACKER_DATA"
	EnvVerbose = "STACKER_VERBOSE"
)

// RunExtension attempts to find and execute an external stacker-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "stacker-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logrus.WithField("extension", externalCmdName).Debug("extension not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables, they are read back by
	// config.Load in extensions built on this module.
	cmd.Env = append(os.Environ(),
		EnvUser+"="+*userFlag,
		EnvStore+"="+*storeFlag,
		EnvData+"="+*dataFlag,
		EnvVerbose+"="+strconv.FormatBool(*verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1 // Indicate that an attempt was made, but it failed
	}

	return true, 0
}
