package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/gdmrisk/internal/infrastructure/artifacts"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Inspect and initialize model artifact directories",
}

var artifactsVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Load the artifacts and print their versions",
	Long:  "Load every artifact, run the consistency checks the server runs at startup and print the content versions. Exits non-zero on failure.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		log := cliLogger()
		cfg, err := loadConfig(log)
		if err != nil {
			return err
		}
		store, err := artifacts.Load(ctx, cfg.Artifacts.Dir, log)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), map[string]interface{}{
			"dir":      store.Dir(),
			"files":    store.Files(),
			"versions": store.Versions(),
		})
	},
}

var artifactsInitCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Write a self-consistent sample artifact set for development",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := artifacts.WriteSample(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "sample artifacts written to %s\n", args[0])
		return nil
	},
}

func init() {
	artifactsCmd.AddCommand(artifactsVerifyCmd, artifactsInitCmd)
	rootCmd.AddCommand(artifactsCmd)
}
