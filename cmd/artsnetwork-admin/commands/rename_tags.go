package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvan-em/artsnetwork/internal/admin"
)

// RenameTagsCmd creates the rename-tags command
func RenameTagsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename-tags <old-name> <new-name>",
		Short: "Rename a tag value across all activity articles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, newName := args[0], args[1]
			collection, _ := cmd.Flags().GetString("collection")

			updated, err := admin.RenameTag(app.Ctx, app.CMS, collection, oldName, newName)
			if err != nil {
				return err
			}

			fmt.Printf("Renamed %q to %q in %d records\n", oldName, newName, updated)
			return nil
		},
	}

	cmd.Flags().String("collection", "activity", "Collection whose tags to rewrite")
	return cmd
}
