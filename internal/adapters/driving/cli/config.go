package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client configuration",
	Long: `Read and write client configuration.

Well-known keys:
  ` + driven.ConfigKeyBaseURL + `               archive backend base URL
  ` + driven.ConfigKeyPollInterval + `  notification poll interval in seconds
  ` + driven.ConfigKeyFeedEnabled + `    enable the live notification feed

Examples:
  arsip config set ` + driven.ConfigKeyBaseURL + ` https://arsip.example.go.id
  arsip config get ` + driven.ConfigKeyBaseURL + `
  arsip config list`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	RunE:  runConfigList,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

// configStore returns the wired config store.
func configStore() (driven.ConfigStore, error) {
	if services == nil || services.Config == nil {
		return nil, errors.New("config store not configured")
	}
	return services.Config, nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := configStore()
	if err != nil {
		return err
	}

	value, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := configStore()
	if err != nil {
		return err
	}

	if err := store.Set(args[0], coerceValue(args[1])); err != nil {
		return fmt.Errorf("setting %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	store, err := configStore()
	if err != nil {
		return err
	}

	if err := store.Delete(args[0]); err != nil {
		return fmt.Errorf("unsetting %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])
	return nil
}

// coerceValue turns "true" and "30" into typed values so the typed
// getters see them.
func coerceValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	store, err := configStore()
	if err != nil {
		return err
	}

	keys := store.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No configuration set")
		return nil
	}

	for _, key := range keys {
		value, _ := store.Get(key)
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
	}
	return nil
}
