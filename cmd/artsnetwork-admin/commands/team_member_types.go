package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvan-em/artsnetwork/internal/admin"
)

// AddTeamMemberTypesCmd creates the add-team-member-types command
func AddTeamMemberTypesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add-team-member-types",
		Short: "Ensure the team member type enum has both team and steering_group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := admin.OpenDB(app.Cfg.Pg())
			if err != nil {
				return err
			}
			defer db.Close()

			added, err := admin.EnsureEnumValues(db, "team_members_type", admin.TeamMemberTypes)
			if err != nil {
				return err
			}

			if len(added) == 0 {
				fmt.Println("team_members_type already has all values")
			} else {
				fmt.Printf("Added %d values to team_members_type: %v\n", len(added), added)
			}
			return nil
		},
	}
}
