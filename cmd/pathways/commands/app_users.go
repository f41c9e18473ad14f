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

// NewAppUsersCommand creates the appusers command group.
func NewAppUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appusers",
		Aliases: []string{"appuser", "users"},
		Short:   "Manage app users",
		Long:    "List and create Pathways app users and manage their enrollments",
	}

	cmd.AddCommand(newAppUsersListCommand())
	cmd.AddCommand(newAppUsersCreateCommand())
	cmd.AddCommand(newAppUsersEnrollCommand())
	cmd.AddCommand(newAppUsersProcessCommand())

	return cmd
}

func newAppUsersListCommand() *cobra.Command {
	var (
		page       int
		identityID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List app users",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			users, err := service.ListAppUsers(context.Background(), page, identityID)
			if err != nil {
				return err
			}

			return outputAppUsers(users)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page to fetch")
	cmd.Flags().StringVar(&identityID, "identity-id", "", "filter by identity id")

	return cmd
}

func newAppUsersCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create IDENTITY_ID",
		Short: "Create an app user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return ErrIdentityIDRequired
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			user, err := service.CreateAppUser(context.Background(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(user)
			case OutputFormatYAML:
				return outputYAML(user)
			default:
				fmt.Printf("Created app user %d for identity %s\n", user.ID, user.IdentityID)

				return nil
			}
		},
	}

	return cmd
}

func newAppUsersEnrollCommand() *cobra.Command {
	var (
		journeyID int
		stageSlug string
	)

	cmd := &cobra.Command{
		Use:   "enroll APP_USER_ID PATHWAY_ID",
		Short: "Enroll an app user in a pathway",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathwayID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parsing pathway id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			enrollment, err := service.CreateAppUserPathway(context.Background(), args[0], pathways.AppUserPathwayData{
				JourneyID:         journeyID,
				OriginalPathwayID: pathwayID,
				CurrentStageSlug:  stageSlug,
				DisabledRuleIDs:   pathways.RuleIDs(),
			})
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(enrollment)
			case OutputFormatYAML:
				return outputYAML(enrollment)
			default:
				fmt.Printf("Enrolled app user %s in pathway %d (enrollment %d)\n", args[0], pathwayID, enrollment.ID)

				return nil
			}
		},
	}

	cmd.Flags().IntVar(&journeyID, "journey", 0, "journey id to attach the enrollment to")
	cmd.Flags().StringVar(&stageSlug, "stage", "", "initial stage slug")

	return cmd
}

func newAppUsersProcessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process APP_USER_ID ENROLLMENT_ID",
		Short: "Process an app user's pathway enrollment now",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enrollmentID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parsing enrollment id: %w", err)
			}

			service, err := CreateAdminService()
			if err != nil {
				return err
			}

			result, err := service.ProcessAppUserPathway(context.Background(), args[0], enrollmentID)
			if err != nil {
				return err
			}

			fmt.Println(result)

			return nil
		},
	}

	return cmd
}

func outputAppUsers(users *pathways.ListResponse[pathways.AppUser]) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(users)
	case OutputFormatYAML:
		return outputYAML(users)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Identity", "Pathways", "Journeys")

		for _, user := range users.Results {
			_ = table.Append(
				strconv.Itoa(user.ID),
				user.IdentityID,
				strconv.Itoa(len(user.Pathways)),
				strconv.Itoa(len(user.Journeys)),
			)
		}

		_ = table.Render()

		fmt.Printf("Total: %d\n", users.Count)

		return nil
	}
}
