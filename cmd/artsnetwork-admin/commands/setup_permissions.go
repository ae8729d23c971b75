package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvan-em/artsnetwork/internal/admin"
)

// SetupPublicPermissionsCmd creates the setup-public-permissions command
func SetupPublicPermissionsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setup-public-permissions",
		Short: "Grant anonymous read access on the content collections the site needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			granted, err := admin.EnsurePublicRead(app.Ctx, app.CMS, admin.PublicReadCollections)
			if err != nil {
				return err
			}

			if len(granted) == 0 {
				fmt.Println("All collections already have public read access")
				return nil
			}

			fmt.Printf("Granted public read on %d collections:\n", len(granted))
			for _, name := range granted {
				fmt.Printf("  - %s\n", name)
			}
			return nil
		},
	}
}
