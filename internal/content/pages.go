package content

import (
	"context"

	"github.com/cvan-em/artsnetwork/internal/directus"
	"github.com/cvan-em/artsnetwork/internal/domain"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

// Page singletons. The rendering layer must always have something to show, so
// a missing or unconfigured collection falls back to hardcoded defaults
// instead of erroring.

func (s *Service) HomePage(ctx context.Context) *domain.HomePage {
	var page domain.HomePage
	if err := s.cms.GetSingleton(ctx, "home_page", &page); err != nil {
		logger.Log.Warn("home_page singleton unavailable, using defaults", "error", err)
		return defaultHomePage()
	}
	return &page
}

func (s *Service) AboutPage(ctx context.Context) *domain.AboutPage {
	var page domain.AboutPage
	if err := s.cms.GetSingleton(ctx, "about_page", &page); err != nil {
		logger.Log.Warn("about_page singleton unavailable, using defaults", "error", err)
		return &domain.AboutPage{HeroTitle: "About CVAN East Midlands"}
	}
	return &page
}

func (s *Service) MentoringPage(ctx context.Context) *domain.MentoringPage {
	var page domain.MentoringPage
	if err := s.cms.GetSingleton(ctx, "mentoring_page", &page); err != nil {
		logger.Log.Warn("mentoring_page singleton unavailable, using defaults", "error", err)
		return &domain.MentoringPage{HeroTitle: "Mentoring Programme"}
	}
	return &page
}

// ActivityPage is a regular collection holding a single row, not a CMS
// singleton, so it is fetched as a limit-1 listing.
func (s *Service) ActivityPage(ctx context.Context) *domain.ActivityPage {
	var pages []domain.ActivityPage
	err := s.cms.ListItems(ctx, "activity_page", directus.Query{Limit: 1}, &pages)
	if err != nil || len(pages) == 0 {
		logger.Log.Warn("activity_page collection not configured, using defaults")
		return defaultActivityPage()
	}
	return &pages[0]
}

func (s *Service) EventSubmissionForm(ctx context.Context) *domain.SubmissionFormPage {
	var page domain.SubmissionFormPage
	if err := s.cms.GetSingleton(ctx, "event_submission_form", &page); err != nil {
		logger.Log.Warn("event_submission_form singleton unavailable, using defaults", "error", err)
		return &domain.SubmissionFormPage{
			PageTitle:      "Submit an Event",
			SuccessMessage: "Event submitted successfully! It will be reviewed before being published.",
		}
	}
	return &page
}

func (s *Service) OpportunitySubmissionForm(ctx context.Context) *domain.SubmissionFormPage {
	var page domain.SubmissionFormPage
	if err := s.cms.GetSingleton(ctx, "opportunity_submission_form", &page); err != nil {
		logger.Log.Warn("opportunity_submission_form singleton unavailable, using defaults", "error", err)
		return &domain.SubmissionFormPage{
			PageTitle:      "Submit an Opportunity",
			SuccessMessage: "Opportunity submitted successfully! It will be reviewed before being published.",
		}
	}
	return &page
}

func defaultHomePage() *domain.HomePage {
	return &domain.HomePage{
		HeroTitle:                 "Contemporary Visual Arts Network East Midlands",
		ActivitySectionTitle:      "Activity",
		EventsSectionTitle:        "What's On",
		OpportunitiesSectionTitle: "Opportunities",
	}
}

func defaultActivityPage() *domain.ActivityPage {
	return &domain.ActivityPage{
		HeroTitle: "CVAN EM Activity",
		HeroDescription: "A resource documenting recent and ongoing projects delivered by CVAN EM, " +
			"often in collaboration with partners but always celebrating and supporting arts and " +
			"culture in the region, championing artists and supporting in safeguarding the " +
			"long-term future of the sector.",
	}
}
