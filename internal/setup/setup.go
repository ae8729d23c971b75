package setup

import (
	"github.com/cvan-em/artsnetwork/internal/config"
	"github.com/cvan-em/artsnetwork/internal/content"
	"github.com/cvan-em/artsnetwork/internal/directus"
	"github.com/cvan-em/artsnetwork/internal/handler"
	"github.com/cvan-em/artsnetwork/internal/imaging"
	"github.com/cvan-em/artsnetwork/internal/mailer"
	"github.com/cvan-em/artsnetwork/internal/service"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config   *config.Config
	CMS      *directus.Client
	Content  *content.Service
	Notifier *service.Notifier
	Handler  *handler.Handler
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	cms := directus.New(cfg.Public.DirectusURL, cfg.DirectusToken())
	contentSvc := content.New(cms)

	smtp := mailer.NewSMTPSender(cfg.Smtp())
	templated := mailer.NewTemplated(smtp, contentSvc, cfg.Public.SiteURL, cfg.Public.DirectusURL, cfg.Public.AdminEmail)

	notifier := service.NewNotifier(cfg.Public.NotifierQueueSize)

	imagingOpts := imaging.DefaultOptions()
	imagingOpts.TriggerBytes = cfg.Public.ImageTriggerBytes
	imagingOpts.CeilingBytes = cfg.Public.MaxImageBytes

	submission := service.NewSubmission(cms, templated, notifier, imagingOpts)

	h := handler.New(submission, contentSvc, templated, cms, cfg)

	return &Dependencies{
		Config:   cfg,
		CMS:      cms,
		Content:  contentSvc,
		Notifier: notifier,
		Handler:  h,
	}, nil
}
