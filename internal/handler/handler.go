package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/cvan-em/artsnetwork/internal/config"
	"github.com/cvan-em/artsnetwork/internal/domain"
	"github.com/cvan-em/artsnetwork/internal/service"
	"github.com/cvan-em/artsnetwork/internal/validation"
)

// SubmissionService accepts public form submissions.
type SubmissionService interface {
	SubmitEvent(ctx context.Context, sub *validation.EventSubmission, image *service.ImageUpload) (*domain.Event, error)
	SubmitOpportunity(ctx context.Context, sub *validation.OpportunitySubmission, image *service.ImageUpload) (*domain.Opportunity, error)
}

// ContentService is the read-only query surface over the CMS.
type ContentService interface {
	PublishedEvents(ctx context.Context, limit int) ([]domain.Event, error)
	PublishedOpportunities(ctx context.Context, limit int) ([]domain.Opportunity, error)
	CurrentActivity(ctx context.Context, limit int) ([]domain.ActivityArticle, error)
	ArchivedActivity(ctx context.Context, limit, offset int) ([]domain.ActivityArticle, error)
	ArchivedActivityCount(ctx context.Context) (int, error)
	ActivityByTagSlug(ctx context.Context, slug string) ([]domain.ActivityArticle, error)
	EventBySlug(ctx context.Context, slug string) (*domain.Event, error)
	OpportunityBySlug(ctx context.Context, slug string) (*domain.Opportunity, error)
	ActivityBySlug(ctx context.Context, slug string) (*domain.ActivityArticle, error)
	EventById(ctx context.Context, id string) (*domain.Event, error)
	OpportunityById(ctx context.Context, id string) (*domain.Opportunity, error)
	TeamMembers(ctx context.Context, memberType string) ([]domain.TeamMember, error)
	ProjectTagDescriptions(ctx context.Context) ([]domain.ProjectTagDescription, error)
	ProjectTagDescriptionBySlug(ctx context.Context, slug string) (*domain.ProjectTagDescription, error)
	HomePage(ctx context.Context) *domain.HomePage
	AboutPage(ctx context.Context) *domain.AboutPage
	MentoringPage(ctx context.Context) *domain.MentoringPage
	ActivityPage(ctx context.Context) *domain.ActivityPage
	EventSubmissionForm(ctx context.Context) *domain.SubmissionFormPage
	OpportunitySubmissionForm(ctx context.Context) *domain.SubmissionFormPage
}

// PublishMailer sends the "your submission is live" notifications triggered
// by the CMS status webhook.
type PublishMailer interface {
	SendEventPublished(ctx context.Context, ev *domain.Event) error
	SendOpportunityPublished(ctx context.Context, op *domain.Opportunity) error
}

// Pinger reports whether the CMS is reachable, for readiness probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	submission SubmissionService
	content    ContentService
	publisher  PublishMailer
	health     Pinger
	cfg        *config.Config
}

func New(submission SubmissionService, content ContentService, publisher PublishMailer, health Pinger, cfg *config.Config) *Handler {
	return &Handler{submission, content, publisher, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Print(err.Error())
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Print(err.Error())
	}
}
