package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/internal/domain/service"
)

var guidanceCmd = &cobra.Command{
	Use:       "guidance <tier>",
	Short:     "Print the dietary guidance for a risk tier",
	Long:      "Print the dietary guidance for a tier given by slug (minimal, low, moderate, high) or full name.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"minimal", "low", "moderate", "high"},
	RunE: func(cmd *cobra.Command, args []string) error {
		tier, err := service.ParseTier(args[0])
		if err != nil {
			return err
		}
		plan, err := service.LookupGuidance(tier)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), plan)
	},
}

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the risk tiers and their score bands",
	RunE: func(cmd *cobra.Command, _ []string) error {
		bands := service.TierBands()
		out := make([]dto.TierDTO, len(bands))
		for i, b := range bands {
			out[i] = dto.NewTierDTO(b)
		}
		return printOutput(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(guidanceCmd, tiersCmd)
}
