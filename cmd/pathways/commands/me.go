package commands

import (
	"context"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// NewMeCommand creates the me command.
func NewMeCommand() *cobra.Command {
	var identityFilter bool

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user's profile",
		Long:  "Fetch the Pathways profile of the user identified by the configured JWT",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateUserClient()
			if err != nil {
				return err
			}

			me, err := client.Me(context.Background(), identityFilter)
			if err != nil {
				return err
			}

			return outputMe(me)
		},
	}

	cmd.Flags().BoolVar(&identityFilter, "identity-filter", false, "scope the request by the JWT's sub claim")

	return cmd
}

func outputMe(me *pathways.Me) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(me)
	case OutputFormatYAML:
		return outputYAML(me)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Pathway", "Stage", "Active", "Next Processing")

		for _, pathway := range me.Pathways {
			_ = table.Append(
				pathway.OriginalPathway.Name,
				pathway.CurrentStageSlug,
				boolString(pathway.OriginalPathway.IsActive),
				pathway.NextProcessingTime,
			)
		}

		_ = table.Render()

		return nil
	}
}
