package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// NewRulesCommand creates the rules command group.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Aliases: []string{"rule"},
		Short:   "Manage rules",
		Long:    "List, inspect and delete the application's automation rules",
	}

	cmd.AddCommand(newRulesListCommand())
	cmd.AddCommand(newRulesGetCommand())
	cmd.AddCommand(newRulesDeleteCommand())

	return cmd
}

func newRulesListCommand() *cobra.Command {
	var (
		page    int
		ownerID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			list, err := service.ListRules(context.Background(), page, ownerID)
			if err != nil {
				return err
			}

			return outputRules(list)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page to fetch")
	cmd.Flags().StringVar(&ownerID, "owner", "", "filter by owner id")

	return cmd
}

func newRulesGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get RULE_ID",
		Short: "Show one rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing rule id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			rule, err := service.GetRule(context.Background(), ruleID)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return outputYAML(rule)
			default:
				return outputJSON(rule)
			}
		},
	}

	return cmd
}

func newRulesDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete RULE_ID",
		Short: "Delete a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing rule id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			if _, err := service.DeleteRule(context.Background(), ruleID); err != nil {
				return err
			}

			fmt.Printf("Deleted rule %d\n", ruleID)

			return nil
		},
	}

	return cmd
}

func outputRules(list *pathways.ListResponse[pathways.Rule]) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(list)
	case OutputFormatYAML:
		return outputYAML(list)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Who", "When", "What")

		for _, rule := range list.Results {
			_ = table.Append(
				strconv.Itoa(rule.ID),
				rule.Name,
				string(rule.Who.Type),
				string(rule.When.Type),
				string(rule.What.Type),
			)
		}

		_ = table.Render()

		fmt.Printf("Total: %d\n", list.Count)

		return nil
	}
}
