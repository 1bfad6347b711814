package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/gdmrisk/internal/infrastructure/events"
	"github.com/turtacn/gdmrisk/pkg/errors"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Work with the assessment event stream",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow assessment events from Kafka until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := cliLogger()
		cfg, err := loadConfig(log)
		if err != nil {
			return err
		}
		if len(cfg.Kafka.Brokers) == 0 {
			return errors.ErrInvalidConfig("kafka.brokers is empty")
		}

		consumer := events.NewKafkaConsumer(cfg.Kafka, log)
		defer consumer.Close()
		return consumer.Run(ctx, func(_ context.Context, e events.AssessmentEvent) error {
			return printOutput(cmd.OutOrStdout(), e)
		})
	},
}

func init() {
	eventsCmd.AddCommand(eventsTailCmd)
	rootCmd.AddCommand(eventsCmd)
}
