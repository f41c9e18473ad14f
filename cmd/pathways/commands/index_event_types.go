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

// NewIndexEventTypesCommand creates the index-event-types command group.
func NewIndexEventTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "index-event-types",
		Aliases: []string{"index-event-type", "iet"},
		Short:   "Manage index event types",
		Long:    "List, create and delete the application's index event types",
	}

	cmd.AddCommand(newIndexEventTypesListCommand())
	cmd.AddCommand(newIndexEventTypesCreateCommand())
	cmd.AddCommand(newIndexEventTypesDeleteCommand())

	return cmd
}

func newIndexEventTypesListCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List index event types",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			list, err := service.ListIndexEventTypes(context.Background(), page)
			if err != nil {
				return err
			}

			return outputIndexEventTypes(list)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page to fetch")

	return cmd
}

func newIndexEventTypesCreateCommand() *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an index event type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if slug == "" {
				return ErrEventTypeSlugRequired
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			eventType, err := service.CreateIndexEventType(context.Background(), args[0], slug, nil)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(eventType)
			case OutputFormatYAML:
				return outputYAML(eventType)
			default:
				fmt.Printf("Created index event type %d: %s (%s)\n", eventType.ID, eventType.Name, eventType.Slug)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "event type slug")

	return cmd
}

func newIndexEventTypesDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete EVENT_TYPE_ID",
		Short: "Delete an index event type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventTypeID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing event type id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			if _, err := service.DeleteIndexEventType(context.Background(), eventTypeID); err != nil {
				return err
			}

			fmt.Printf("Deleted index event type %d\n", eventTypeID)

			return nil
		},
	}

	return cmd
}

func outputIndexEventTypes(list *pathways.ListResponse[pathways.IndexEventType]) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(list)
	case OutputFormatYAML:
		return outputYAML(list)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Slug", "Order")

		for _, eventType := range list.Results {
			_ = table.Append(
				strconv.Itoa(eventType.ID),
				eventType.Name,
				eventType.Slug,
				strconv.Itoa(eventType.OrderIndex),
			)
		}

		_ = table.Render()

		fmt.Printf("Total: %d\n", list.Count)

		return nil
	}
}
