package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"readmegen/internal/models"
	"readmegen/internal/services"
	"readmegen/internal/utils"
)

var flagOutput string

var generateCmd = &cobra.Command{
	Use:   "generate <repository-url-or-path>",
	Short: "Generate a README for a repository",
	Long: `Generate a README for a remote repository URL or a local checkout.
Remote targets are cloned shallowly into a temporary directory that is
removed afterwards. The document is written to stdout unless --output
names a file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		svcs, err := services.NewServices(ctx, cfg, nil)
		if err != nil {
			return err
		}

		target := args[0]
		var doc *models.ReadmeDocument
		var stats *services.GenerateStats
		if utils.DirectoryExists(target) {
			doc, stats, err = svcs.Readme.GenerateFromPath(ctx, target)
		} else {
			doc, stats, err = svcs.Readme.Generate(ctx, target)
		}
		if err != nil {
			return err
		}

		rendered := doc.Render()
		if flagOutput != "" {
			if err := os.WriteFile(flagOutput, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", flagOutput, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d files analyzed)\n",
				flagOutput, stats.Status, stats.FilesAnalyzed)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the README to this file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}
