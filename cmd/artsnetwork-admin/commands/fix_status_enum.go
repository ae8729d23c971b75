package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvan-em/artsnetwork/internal/admin"
)

// FixStatusEnumCmd creates the fix-status-enum command
func FixStatusEnumCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix-status-enum",
		Short: "Add any missing moderation status values to a collection's status enum",
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, _ := cmd.Flags().GetString("collection")
			if collection != "events" && collection != "opportunities" && collection != "activity" {
				return fmt.Errorf("unknown collection %q (want events, opportunities or activity)", collection)
			}

			db, err := admin.OpenDB(app.Cfg.Pg())
			if err != nil {
				return err
			}
			defer db.Close()

			typeName := collection + "_status"
			added, err := admin.EnsureEnumValues(db, typeName, admin.StatusValues)
			if err != nil {
				return err
			}

			if err := admin.EnsureStatusColumnDefault(db, collection); err != nil {
				return err
			}

			if len(added) == 0 {
				fmt.Printf("%s already has all status values\n", typeName)
			} else {
				fmt.Printf("Added %d status values to %s: %v\n", len(added), typeName, added)
			}
			return nil
		},
	}

	cmd.Flags().String("collection", "events", "Collection whose status enum to fix (events, opportunities, activity)")
	return cmd
}
