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

// NewSnapshotsCommand creates the snapshots command group.
func NewSnapshotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshots",
		Aliases: []string{"snapshot"},
		Short:   "Manage pathway snapshots",
		Long:    "List, create and share versioned snapshots of pathway definitions",
	}

	cmd.AddCommand(newSnapshotsListCommand())
	cmd.AddCommand(newSnapshotsCreateCommand())
	cmd.AddCommand(newSnapshotsShareCommand())
	cmd.AddCommand(newSnapshotsSharedCommand())
	cmd.AddCommand(newSnapshotsUseCommand())

	return cmd
}

func newSnapshotsListCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list PATHWAY_ID",
		Short: "List a pathway's snapshots",
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

			list, err := service.ListPathwaySnapshots(context.Background(), pathwayID, page)
			if err != nil {
				return err
			}

			return outputSnapshots(list)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page to fetch")

	return cmd
}

func newSnapshotsCreateCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create PATHWAY_ID NAME",
		Short: "Snapshot a pathway's current definition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathwayID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing pathway id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			snapshot, err := service.CreatePathwaySnapshot(context.Background(), pathwayID, pathways.PathwaySnapshotData{
				Name:        args[1],
				Description: description,
			})
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(snapshot)
			case OutputFormatYAML:
				return outputYAML(snapshot)
			default:
				fmt.Printf("Created snapshot %d of pathway %d: %s\n", snapshot.Snapshot.Number, pathwayID, snapshot.Snapshot.Name)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "snapshot description")

	return cmd
}

func newSnapshotsShareCommand() *cobra.Command {
	var unshare bool

	cmd := &cobra.Command{
		Use:   "share PATHWAY_ID SNAPSHOT_ID",
		Short: "Share or unshare a snapshot with child organisations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathwayID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing pathway id: %w", err)
			}

			snapshotID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parsing snapshot id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var snapshot *pathways.PathwaySnapshot
			if unshare {
				snapshot, err = service.UnsharePathwaySnapshot(ctx, pathwayID, snapshotID)
			} else {
				snapshot, err = service.SharePathwaySnapshot(ctx, pathwayID, snapshotID)
			}

			if err != nil {
				return err
			}

			fmt.Printf("Snapshot %d shared: %s\n", snapshotID, boolString(snapshot.Snapshot.IsSharedSnapshot))

			return nil
		},
	}

	cmd.Flags().BoolVar(&unshare, "unshare", false, "withdraw the share instead")

	return cmd
}

func newSnapshotsSharedCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "shared",
		Short: "List snapshots shared by the parent organisation",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			list, err := service.ListSharedPathwaySnapshots(context.Background(), page)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(list)
			case OutputFormatYAML:
				return outputYAML(list)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Snapshot", "From")

				for _, snapshot := range list.Results {
					_ = table.Append(
						strconv.Itoa(snapshot.ID),
						snapshot.Name,
						snapshot.Snapshot.Name,
						snapshot.Sharing.ParentName,
					)
				}

				_ = table.Render()

				fmt.Printf("Total: %d\n", list.Count)

				return nil
			}
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page to fetch")

	return cmd
}

func newSnapshotsUseCommand() *cobra.Command {
	var indexEventTypes map[string]string

	cmd := &cobra.Command{
		Use:   "use SNAPSHOT_ID",
		Short: "Instantiate a shared snapshot as a local pathway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshotID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing snapshot id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			pathway, err := service.UseSharedPathwaySnapshot(context.Background(), snapshotID, indexEventTypes)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(pathway)
			case OutputFormatYAML:
				return outputYAML(pathway)
			default:
				fmt.Printf("Created pathway %d from shared snapshot %d: %s\n", pathway.ID, snapshotID, pathway.Name)

				return nil
			}
		},
	}

	cmd.Flags().StringToStringVar(&indexEventTypes, "index-event-types", nil,
		"map snapshot index event type slugs to local slugs (snapshot-slug=local-slug)")

	return cmd
}

func outputSnapshots(list *pathways.ListResponse[pathways.PathwaySnapshot]) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(list)
	case OutputFormatYAML:
		return outputYAML(list)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Number", "Name", "Shared", "Description")

		for _, snapshot := range list.Results {
			_ = table.Append(
				strconv.Itoa(snapshot.Snapshot.Number),
				snapshot.Snapshot.Name,
				boolString(snapshot.Snapshot.IsSharedSnapshot),
				snapshot.Snapshot.Description,
			)
		}

		_ = table.Render()

		fmt.Printf("Total: %d\n", list.Count)

		return nil
	}
}
