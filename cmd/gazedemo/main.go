// Command gazedemo shows a gaze layout with a dwell keyboard, a sensor and
// buttons, either in a window driven by the mouse cursor or headless from a
// JSON gaze script.
package main

import (
	"fmt"
	"os"
)

func main() {
	exitCode := 0
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	}
	syncLogger()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
