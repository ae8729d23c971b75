package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvan-em/artsnetwork/internal/admin"
)

// CreateSingletonsCmd creates the create-singletons command
func CreateSingletonsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create-singletons",
		Short: "Create the page-content singleton collections missing from the CMS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := admin.EnsureCollections(app.Ctx, app.CMS, admin.SingletonSpecs())
			if err != nil {
				return err
			}

			if len(created) == 0 {
				fmt.Println("All singleton collections already exist")
				return nil
			}

			fmt.Printf("Created %d collections:\n", len(created))
			for _, name := range created {
				fmt.Printf("  - %s\n", name)
			}
			return nil
		},
	}
}
