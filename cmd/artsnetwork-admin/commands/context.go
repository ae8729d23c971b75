package commands

import (
	"context"

	"github.com/cvan-em/artsnetwork/internal/config"
	"github.com/cvan-em/artsnetwork/internal/directus"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg *config.Config
	CMS *directus.Client
	Ctx context.Context
}
