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

// NewPathwaysCommand creates the pathways command group.
func NewPathwaysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pathways",
		Aliases: []string{"pathway", "pw"},
		Short:   "Manage pathway definitions",
		Long:    "List, inspect, create, duplicate and delete pathway definitions",
	}

	cmd.AddCommand(newPathwaysListCommand())
	cmd.AddCommand(newPathwaysGetCommand())
	cmd.AddCommand(newPathwaysCreateCommand())
	cmd.AddCommand(newPathwaysDuplicateCommand())
	cmd.AddCommand(newPathwaysDeleteCommand())

	return cmd
}

func newPathwaysListCommand() *cobra.Command {
	var (
		page         int
		deleted      bool
		withoutRules bool
		ownerID      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pathway definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			opts := pathways.PathwayListOptions{Page: page, OwnerID: ownerID}

			if cmd.Flags().Changed("deleted") {
				opts.IsDeleted = &deleted
			}

			if withoutRules {
				withRules := false
				opts.WithRules = &withRules
			}

			list, err := service.ListPathways(context.Background(), opts)
			if err != nil {
				return err
			}

			return outputPathways(list)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page to fetch")
	cmd.Flags().BoolVar(&deleted, "deleted", false, "filter by deletion state")
	cmd.Flags().BoolVar(&withoutRules, "without-rules", false, "omit rules from the response")
	cmd.Flags().StringVar(&ownerID, "owner", "", "filter by owner id")

	return cmd
}

func newPathwaysGetCommand() *cobra.Command {
	var withoutRules bool

	cmd := &cobra.Command{
		Use:   "get PATHWAY_ID",
		Short: "Show one pathway definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathwayID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing pathway id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			pathway, err := service.GetPathway(context.Background(), pathwayID, !withoutRules)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return outputYAML(pathway)
			default:
				return outputJSON(pathway)
			}
		},
	}

	cmd.Flags().BoolVar(&withoutRules, "without-rules", false, "omit rules from the response")

	return cmd
}

func newPathwaysCreateCommand() *cobra.Command {
	var (
		description string
		inactive    bool
		ownerID     string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a pathway definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			pathway, err := service.CreatePathway(context.Background(), pathways.PathwayData{
				Name:        args[0],
				Description: description,
				IsActive:    !inactive,
				OwnerID:     ownerID,
			})
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(pathway)
			case OutputFormatYAML:
				return outputYAML(pathway)
			default:
				fmt.Printf("Created pathway %d: %s\n", pathway.ID, pathway.Name)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "pathway description")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "create the pathway inactive")
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner id")

	return cmd
}

func newPathwaysDuplicateCommand() *cobra.Command {
	var ownerID string

	cmd := &cobra.Command{
		Use:   "duplicate PATHWAY_ID",
		Short: "Duplicate a pathway definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathwayID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing pathway id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			duplicate, err := service.DuplicatePathway(context.Background(), pathwayID, nil, ownerID)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(duplicate)
			case OutputFormatYAML:
				return outputYAML(duplicate)
			default:
				fmt.Printf("Duplicated pathway %d as %d: %s\n", pathwayID, duplicate.ID, duplicate.Name)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "owner id for the copy")

	return cmd
}

func newPathwaysDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete PATHWAY_ID",
		Short: "Delete a pathway definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathwayID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing pathway id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			if _, err := service.DeletePathway(context.Background(), pathwayID); err != nil {
				return err
			}

			fmt.Printf("Deleted pathway %d\n", pathwayID)

			return nil
		},
	}

	return cmd
}

func outputPathways(list *pathways.ListResponse[pathways.Pathway]) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(list)
	case OutputFormatYAML:
		return outputYAML(list)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Active", "Deleted", "Stages")

		for _, pathway := range list.Results {
			_ = table.Append(
				strconv.Itoa(pathway.ID),
				pathway.Name,
				boolString(pathway.IsActive),
				boolString(pathway.IsDeleted),
				strconv.Itoa(len(pathway.Stages)),
			)
		}

		_ = table.Render()

		fmt.Printf("Total: %d\n", list.Count)

		return nil
	}
}
