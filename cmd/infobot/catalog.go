package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/infobot/internal/cli"
	"github.com/aretw0/infobot/internal/presentation/tui"
	"github.com/aretw0/infobot/internal/resolver"
	"github.com/aretw0/infobot/internal/validator"
	"github.com/aretw0/infobot/pkg/adapters/dataset"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the college catalog",
	Long:  `List, show and validate the college dataset without starting a conversation.`,
}

var catalogLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List colleges, optionally filtered by location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, err := cli.LoadCatalog(cmd.Context(), cfg.Catalog)
		if err != nil {
			return err
		}

		records := store.All()
		if location, _ := cmd.Flags().GetString("location"); location != "" {
			records = store.FindByLocation(location)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No colleges found.")
			return nil
		}
		for _, r := range records {
			fmt.Fprintf(out, "- %s (%s) tuition %s\n", r.Name, r.Location, r.TuitionFee)
		}
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Describe the first college whose name contains <name>",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, err := cli.LoadCatalog(cmd.Context(), cfg.Catalog)
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		record, ok := resolver.FindByName(store, query)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrRecordNotFound, query)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling record: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		text, _ := tui.Plain(resolver.Describe(record))
		fmt.Fprintln(out, text)
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check that a dataset loads cleanly",
	Long: `Loads the dataset with the same rules the bot uses: required headers,
parseable fee columns and at least one record. It then reports colleges that
name lookups can never reach and suspicious fields. Defaults to the configured catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalogCfg := cfg.Catalog
		if len(args) > 0 {
			catalogCfg.Path = args[0]
		}

		format, err := dataset.Detect(catalogCfg.Path)
		if err != nil {
			return err
		}
		store, err := cli.LoadCatalog(cmd.Context(), catalogCfg)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		report := validator.ValidateCatalog(store.All())
		for _, issue := range report.Issues {
			fmt.Fprintln(out, issue.Error())
		}
		strict, _ := cmd.Flags().GetBool("strict")
		if err := report.Err(strict); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Fprintf(out, "Catalog is valid: %d colleges (%s).\n", store.Len(), format)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogLsCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)

	catalogLsCmd.Flags().StringP("location", "l", "", "Only list colleges whose location contains this text")
	catalogShowCmd.Flags().Bool("json", false, "Print the raw record as JSON")
	catalogValidateCmd.Flags().Bool("strict", false, "Fail on warnings too")
}
