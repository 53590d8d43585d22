// Command naics classifies company names into NAICS codes.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/naics/internal/bootstrap"
	"github.com/agenthands/naics/internal/config"
	"github.com/agenthands/naics/internal/core"
	"github.com/agenthands/naics/internal/logging"
	"github.com/agenthands/naics/internal/tui"
)

var (
	configPath string
	verbose    bool
	logFile    string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "naics",
	Short:         "Detect NAICS industry codes for a company name",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.FromEnvironment(configPath)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		output := "stderr"
		if cmd.Name() == chatCmd.Name() {
			// The TUI owns the terminal.
			output = logFile
		}
		logger, err = logging.NewWithOutput(level, cfg.Log.Format, output)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat: type a company name per turn",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap.NewDetector(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		return tui.Run(d, cfg.Search.PreviewLength)
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <company name>",
	Short: "Classify one company and print the results as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap.NewDetector(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		company := strings.Join(args, " ")
		out, err := d.Detect(cmd.Context(), company, func(e core.Event) {
			fmt.Fprintln(cmd.ErrOrStderr(), e.Message())
		})
		if err != nil {
			return errors.New(core.UserMessage(err))
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out.Results)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default $CONFIG_PATH or config/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	chatCmd.Flags().StringVar(&logFile, "log-file", os.DevNull, "write logs to this file while the chat is open")

	rootCmd.AddCommand(chatCmd, classifyCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
