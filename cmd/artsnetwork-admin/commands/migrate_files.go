package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvan-em/artsnetwork/internal/admin"
)

// MigrateFilesCmd creates the migrate-files command
func MigrateFilesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate-files",
		Short: "Upload local CMS uploads to the S3 bucket and print the repoint SQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			uploadsDir, _ := cmd.Flags().GetString("uploads-dir")
			bucket, _ := cmd.Flags().GetString("bucket")
			if bucket == "" {
				bucket = app.Cfg.S3().Bucket
			}
			if bucket == "" {
				return fmt.Errorf("no bucket given (--bucket or s3.bucket in private.yaml)")
			}

			client, err := admin.NewS3Client(app.Ctx, app.Cfg.S3())
			if err != nil {
				return err
			}

			result, err := admin.MigrateDir(app.Ctx, client, uploadsDir, bucket)
			if err != nil {
				return err
			}

			fmt.Printf("Uploaded %d files, skipped %d transform variants\n", len(result.Uploaded), len(result.Skipped))
			fmt.Println("\nRun this against the CMS database after switching the storage driver:")
			fmt.Println(result.SQL)
			return nil
		},
	}

	cmd.Flags().String("uploads-dir", "uploads", "Local CMS uploads directory")
	cmd.Flags().String("bucket", "", "Target S3 bucket (defaults to s3.bucket from private.yaml)")
	return cmd
}
