// Package cmd wires the command line interface around the generation
// pipeline. Every subcommand shares one resolved configuration.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"readmegen/internal/config"
	"readmegen/internal/events"
	"readmegen/internal/services"
	"readmegen/internal/slogutil"
)

var (
	cfg          config.Config
	flagProvider string
	flagModel    string
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "readmegen",
	Short: "Generate README documentation for a repository",
	Long: `readmegen clones a repository, selects its most relevant files,
summarizes them with a model backend, and composes a complete README.
Without a configured backend it still produces a README from repository
facts alone.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if flagProvider != "" {
			cfg.Provider = flagProvider
		}
		if flagModel != "" {
			cfg.Model = flagModel
		}
		if flagDebug {
			cfg.Debug = true
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.APIKey == "" && cfg.Provider != "" {
			cfg.APIKey = services.NewKeyringService().Resolve(cfg.Provider)
		}
		slogutil.Setup(cfg.Debug)
		events.EnableLogEmitter()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "model backend provider (openai, anthropic, gemini)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model name, defaults per provider")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
