package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariahq/aria/internal/config"
)

func newAskCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Run one message through the assistant and print the reply",
		Long: `Dispatch a single message locally, without starting the server.

Examples:
  aria ask "2 plus 3 x 4"
  aria ask "solve x + 2 = 5"
  aria ask "about Albert Einstein"
  aria ask "tell me a story"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// A missing snippet file only disables snippet answers here.
			assistant, _, err := buildAssistant(cfg, false)
			if err != nil {
				return err
			}

			fmt.Println(assistant.Dispatch(cmd.Context(), message))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.config/aria/config.toml)")
	return cmd
}
