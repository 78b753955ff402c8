package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"readmegen/internal/services"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage model backend API keys in the OS keyring",
}

var authSetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Store an API key for a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := args[0]
		fmt.Fprintf(cmd.OutOrStdout(), "API key for %s: ", provider)
		reader := bufio.NewReader(os.Stdin)
		key, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		if err := services.NewKeyringService().StoreApiKey(provider, strings.TrimSpace(key)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored API key for %s.\n", provider)
		return nil
	},
}

var authRemoveCmd = &cobra.Command{
	Use:   "remove <provider>",
	Short: "Remove a stored API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := services.NewKeyringService().DeleteApiKey(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for %s.\n", args[0])
		return nil
	},
}

func init() {
	authCmd.AddCommand(authSetCmd, authRemoveCmd)
	rootCmd.AddCommand(authCmd)
}
