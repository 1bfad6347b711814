package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/gdmrisk/internal/config"
	"github.com/turtacn/gdmrisk/internal/infrastructure/monitoring"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

var (
	configFile   string
	artifactsDir string
	outputFormat string
	logLevel     string
)

// rootCmd represents the base command when the `gdm-admin` binary is called without any subcommands.
// rootCmd 代表在没有任何子命令的情况下调用 `gdm-admin` 二进制文件时的基本命令。
var rootCmd = &cobra.Command{
	Use:   "gdm-admin",
	Short: "A CLI tool for the gestational diabetes risk assessment service.",
	Long: `gdm-admin scores patient records against the local model artifacts,
verifies and initializes artifact directories, prints dietary guidance and
inspects the assessment audit history and event stream.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "json" && outputFormat != "yaml" {
			return fmt.Errorf("unsupported output format %q (json|yaml)", outputFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&artifactsDir, "artifacts", "", "model artifact directory, overrides artifacts.dir")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", "json", "output format: json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")
}

// Execute is the main entry point for the CLI application.
// Execute 是 CLI 应用程序的主入口点。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliLogger writes human readable logs to stderr so stdout stays parseable.
func cliLogger() logger.Logger {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.WarnLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(os.Stderr),
		level,
	)
	return monitoring.NewLoggerFromCore(core)
}

func loadConfig(log logger.Logger) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile, log)
	if err != nil {
		return nil, err
	}
	if artifactsDir != "" {
		cfg.Artifacts.Dir = artifactsDir
	}
	return cfg, nil
}

func printOutput(w io.Writer, v interface{}) error {
	switch outputFormat {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
