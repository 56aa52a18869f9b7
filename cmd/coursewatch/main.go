package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coursewatch",
	Short: "Alerts the moment a closed course section opens up",
	Long: `coursewatch polls course schedule pages in a visible browser session and
raises a loud alert (and a registration tab) the moment a section goes from
closed to anything else.

Login is manual: the browser opens headed, you sign in, and the watcher
detects when the schedule page is reachable.`,
}

func main() {
	rootCmd.AddCommand(watchCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
