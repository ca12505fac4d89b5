// Package cli defines the Cobra command tree for the aria binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "aria",
	Short: "Rule-based virtual assistant server",
	Long: `Aria is a small virtual assistant: it classifies each message with an
ordered keyword rule chain and routes it to the matching responder: canned
replies, arithmetic, symbolic math, encyclopedia lookups, disease facts, code
snippets or a story template. Uploaded files are routed by extension to image
captioning or text extraction.

Run 'aria serve' to start the HTTP server, or 'aria ask' for a one-shot
answer from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newServeCmd(),
		newAskCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aria %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
