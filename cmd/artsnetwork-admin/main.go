package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cvan-em/artsnetwork/cmd/artsnetwork-admin/commands"
	"github.com/cvan-em/artsnetwork/internal/config"
	"github.com/cvan-em/artsnetwork/internal/directus"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

var app *commands.AppContext

func main() {
	rootCmd := &cobra.Command{
		Use:   "artsnetwork-admin",
		Short: "One-shot maintenance procedures for the arts network CMS",
		Long: `Operator tooling for the arts network backend: schema repairs on the
CMS database, collection and permission bootstrapping, tag backfills and the
local-disk to S3 storage migration. Every command is idempotent.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
	}

	rootCmd.AddCommand(commands.FixStatusEnumCmd(appRef()))
	rootCmd.AddCommand(commands.AddTeamMemberTypesCmd(appRef()))
	rootCmd.AddCommand(commands.CreateSingletonsCmd(appRef()))
	rootCmd.AddCommand(commands.RenameTagsCmd(appRef()))
	rootCmd.AddCommand(commands.SetupPublicPermissionsCmd(appRef()))
	rootCmd.AddCommand(commands.MigrateFilesCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared context pointer; it is populated by initApp
// before any command runs.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp builds dependencies from the environment. Credentials come from
// .env (or the real environment) rather than private.yaml so the CLI can run
// from an operator's machine against any deployment.
func initApp() error {
	// A missing .env is fine; the variables may already be exported.
	godotenv.Load()

	logger.Initialize(envOr("LOG_LEVEL", "info"), false)

	directusURL := os.Getenv("DIRECTUS_URL")
	if directusURL == "" {
		return fmt.Errorf("DIRECTUS_URL is not set")
	}

	pgPort, err := strconv.Atoi(envOr("PG_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("invalid PG_PORT: %w", err)
	}

	cfg := config.New(config.Public{
		SiteURL:     envOr("SITE_URL", "http://localhost:3000"),
		DirectusURL: directusURL,
		AdminEmail:  envOr("ADMIN_EMAIL", "admin@localhost"),
	}, config.Private{
		DirectusToken: os.Getenv("DIRECTUS_TOKEN"),
		Pg: config.Pg{
			Host:     envOr("PG_HOST", "localhost"),
			Port:     pgPort,
			User:     envOr("PG_USER", "directus"),
			Password: os.Getenv("PG_PASSWORD"),
			Dbname:   envOr("PG_DBNAME", "directus"),
		},
		S3: config.S3{
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			Region:         envOr("S3_REGION", "auto"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Bucket:         os.Getenv("S3_BUCKET"),
			ForcePathStyle: os.Getenv("S3_FORCE_PATH_STYLE") == "true",
		},
	})

	ref := appRef()
	ref.Cfg = cfg
	ref.CMS = directus.New(cfg.Public.DirectusURL, cfg.DirectusToken())
	ref.Ctx = context.Background()
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
