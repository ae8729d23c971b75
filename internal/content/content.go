// Package content is the read-only query layer over the CMS: published
// listings, slug lookups, singleton pages and tag filtering for the
// server-rendered site. Every function is idempotent and side-effect-free.
package content

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cvan-em/artsnetwork/internal/directus"
	"github.com/cvan-em/artsnetwork/internal/domain"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

// ErrNotFound is returned by single-record lookups when nothing matches.
var ErrNotFound = errors.New("content not found")

const (
	dateLayout = "2006-01-02"

	CollectionEvents        = "events"
	CollectionOpportunities = "opportunities"
	CollectionActivity      = "activity"
)

type Service struct {
	cms      *directus.Client
	richtext *RichTextRenderer

	// now is injectable so date-horizon filtering is testable.
	now func() time.Time
}

func New(cms *directus.Client) *Service {
	return NewWithClock(cms, time.Now)
}

// NewWithClock is used by tests to pin "today".
func NewWithClock(cms *directus.Client, now func() time.Time) *Service {
	return &Service{cms: cms, richtext: NewRichTextRenderer(), now: now}
}

func (s *Service) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

// PublishedEvents lists published events sorted by start date, excluding those
// already over. An event is over when its end date (start date if it has no
// end date) is strictly before today at midnight; events ending today stay in.
func (s *Service) PublishedEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	var events []domain.Event
	err := s.cms.ListItems(ctx, CollectionEvents, directus.Query{
		Filter: directus.Eq("status", domain.StatusPublished),
		Sort:   []string{"event_date"},
	}, &events)
	if err != nil {
		return nil, err
	}

	today := s.today()
	upcoming := events[:0]
	for _, ev := range events {
		horizon := ev.EventEndDate
		if horizon == "" {
			horizon = ev.EventDate
		}
		end, err := time.ParseInLocation(dateLayout, horizon, today.Location())
		if err != nil {
			logger.Log.Warn("event has unparseable date, excluding from listing", "event_id", ev.Id, "date", horizon)
			continue
		}
		if !end.Before(today) {
			upcoming = append(upcoming, ev)
		}
	}

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

// PublishedOpportunities lists published opportunities sorted by deadline.
// Ongoing opportunities are always included, whatever their deadline value;
// specific deadlines must be today or later.
func (s *Service) PublishedOpportunities(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	var opportunities []domain.Opportunity
	err := s.cms.ListItems(ctx, CollectionOpportunities, directus.Query{
		Filter: directus.Eq("status", domain.StatusPublished),
		Sort:   []string{"deadline"},
	}, &opportunities)
	if err != nil {
		return nil, err
	}

	today := s.today()
	active := opportunities[:0]
	for _, opp := range opportunities {
		if opp.DeadlineType == domain.DeadlineTypeOngoing {
			active = append(active, opp)
			continue
		}
		deadline, err := time.ParseInLocation(dateLayout, opp.Deadline, today.Location())
		if err != nil {
			logger.Log.Warn("opportunity has unparseable deadline, excluding from listing", "opportunity_id", opp.Id, "deadline", opp.Deadline)
			continue
		}
		if !deadline.Before(today) {
			active = append(active, opp)
		}
	}

	if limit > 0 && len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

// CurrentActivity lists published, non-archived activity posts newest first.
func (s *Service) CurrentActivity(ctx context.Context, limit int) ([]domain.ActivityArticle, error) {
	var articles []domain.ActivityArticle
	err := s.cms.ListItems(ctx, CollectionActivity, directus.Query{
		Filter: directus.And(
			directus.Eq("status", domain.StatusPublished),
			directus.Eq("is_archive", false),
		),
		Sort:  []string{"-published_at"},
		Limit: limit,
	}, &articles)
	return articles, err
}

// ArchivedActivity pages through archived posts for incremental loading.
func (s *Service) ArchivedActivity(ctx context.Context, limit, offset int) ([]domain.ActivityArticle, error) {
	var articles []domain.ActivityArticle
	err := s.cms.ListItems(ctx, CollectionActivity, directus.Query{
		Filter: directus.And(
			directus.Eq("status", domain.StatusPublished),
			directus.Eq("is_archive", true),
		),
		Sort:   []string{"-published_at"},
		Limit:  limit,
		Offset: offset,
	}, &articles)
	return articles, err
}

// ArchivedActivityCount reports the total number of archived posts so the
// archive page can size its pagination.
func (s *Service) ArchivedActivityCount(ctx context.Context) (int, error) {
	return s.cms.CountItems(ctx, CollectionActivity, directus.And(
		directus.Eq("status", domain.StatusPublished),
		directus.Eq("is_archive", true),
	))
}

// EventBySlug looks an event up by slug, falling back to a primary-key lookup
// when the path segment is numeric (pre-slug URLs still circulate).
func (s *Service) EventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	var events []domain.Event
	err := s.cms.ListItems(ctx, CollectionEvents, directus.Query{
		Filter: directus.Eq("slug", slug),
		Limit:  1,
	}, &events)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		return &events[0], nil
	}

	if _, convErr := strconv.Atoi(slug); convErr == nil {
		var ev domain.Event
		if err := s.cms.GetItem(ctx, CollectionEvents, slug, &ev); err == nil {
			return &ev, nil
		}
	}
	return nil, ErrNotFound
}

// OpportunityBySlug mirrors EventBySlug for opportunities.
func (s *Service) OpportunityBySlug(ctx context.Context, slug string) (*domain.Opportunity, error) {
	var opportunities []domain.Opportunity
	err := s.cms.ListItems(ctx, CollectionOpportunities, directus.Query{
		Filter: directus.Eq("slug", slug),
		Limit:  1,
	}, &opportunities)
	if err != nil {
		return nil, err
	}
	if len(opportunities) > 0 {
		return &opportunities[0], nil
	}

	if _, convErr := strconv.Atoi(slug); convErr == nil {
		var opp domain.Opportunity
		if err := s.cms.GetItem(ctx, CollectionOpportunities, slug, &opp); err == nil {
			return &opp, nil
		}
	}
	return nil, ErrNotFound
}

// ActivityBySlug mirrors EventBySlug for activity posts. The article body is
// rendered to sanitized HTML before it leaves the service.
func (s *Service) ActivityBySlug(ctx context.Context, slug string) (*domain.ActivityArticle, error) {
	var articles []domain.ActivityArticle
	err := s.cms.ListItems(ctx, CollectionActivity, directus.Query{
		Filter: directus.Eq("slug", slug),
		Limit:  1,
	}, &articles)
	if err != nil {
		return nil, err
	}
	if len(articles) > 0 {
		articles[0].Content = s.renderContent(articles[0].Content)
		return &articles[0], nil
	}

	if _, convErr := strconv.Atoi(slug); convErr == nil {
		var article domain.ActivityArticle
		if err := s.cms.GetItem(ctx, CollectionActivity, slug, &article); err == nil {
			article.Content = s.renderContent(article.Content)
			return &article, nil
		}
	}
	return nil, ErrNotFound
}

// renderContent converts a stored article body to sanitized HTML. A rendering
// failure falls back to running the sanitizer alone so unsafe markup never
// reaches a response.
func (s *Service) renderContent(text string) string {
	rendered, err := s.richtext.Render(text)
	if err != nil {
		logger.Log.Warn("rich text rendering failed, serving sanitized source", "error", err)
		return s.richtext.sanitizer.Sanitize(text)
	}
	return rendered
}

// EventById fetches the full record for webhook notifications.
func (s *Service) EventById(ctx context.Context, id string) (*domain.Event, error) {
	var ev domain.Event
	if err := s.cms.GetItem(ctx, CollectionEvents, id, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// OpportunityById fetches the full record for webhook notifications.
func (s *Service) OpportunityById(ctx context.Context, id string) (*domain.Opportunity, error) {
	var opp domain.Opportunity
	if err := s.cms.GetItem(ctx, CollectionOpportunities, id, &opp); err != nil {
		return nil, err
	}
	return &opp, nil
}

// TeamMembers lists members sorted by display order, optionally filtered by
// type ("team" or "steering_group").
func (s *Service) TeamMembers(ctx context.Context, memberType string) ([]domain.TeamMember, error) {
	q := directus.Query{Sort: []string{"order"}}
	if memberType != "" {
		q.Filter = directus.Eq("type", memberType)
	}

	var members []domain.TeamMember
	err := s.cms.ListItems(ctx, "team_members", q, &members)
	return members, err
}

// EmailTemplateByKey loads a named email template. Returns ErrNotFound when
// the key is unregistered.
func (s *Service) EmailTemplateByKey(ctx context.Context, key string) (*domain.EmailTemplate, error) {
	var templates []domain.EmailTemplate
	err := s.cms.ListItems(ctx, "email_templates", directus.Query{
		Filter: directus.Eq("template_key", key),
		Limit:  1,
	}, &templates)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, ErrNotFound
	}
	return &templates[0], nil
}
