package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvan-em/artsnetwork/internal/directus"
	"github.com/cvan-em/artsnetwork/internal/domain"
)

// fixed "today" for date-horizon tests: 2025-06-15
var testClock = func() time.Time {
	return time.Date(2025, 6, 15, 14, 0, 0, 0, time.Local)
}

// fakeCMS serves canned rows per collection path and records request queries.
type fakeCMS struct {
	server   *httptest.Server
	rows     map[string]any // path -> data payload
	lastURL  map[string]string
	statuses map[string]int
}

func newFakeCMS(t *testing.T) *fakeCMS {
	f := &fakeCMS{
		rows:     map[string]any{},
		lastURL:  map[string]string{},
		statuses: map[string]int{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.lastURL[r.URL.Path] = r.URL.RawQuery
		if status, ok := f.statuses[r.URL.Path]; ok {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{"errors": []map[string]any{{"message": "forbidden"}}})
			return
		}
		data, ok := f.rows[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"errors": []map[string]any{{"message": "not found"}}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCMS) service() *Service {
	return NewWithClock(directus.New(f.server.URL, "tok"), testClock)
}

func TestPublishedEvents_DateHorizon(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/events"] = []domain.Event{
		{Id: 1, Title: "ended yesterday", EventDate: "2025-06-10", EventEndDate: "2025-06-14"},
		{Id: 2, Title: "ends today", EventDate: "2025-06-13", EventEndDate: "2025-06-15"},
		{Id: 3, Title: "single day, past", EventDate: "2025-06-01"},
		{Id: 4, Title: "single day, today", EventDate: "2025-06-15"},
		{Id: 5, Title: "future", EventDate: "2025-07-01"},
	}

	events, err := cms.service().PublishedEvents(context.Background(), 0)
	require.NoError(t, err)

	var ids []int64
	for _, ev := range events {
		ids = append(ids, ev.Id)
	}
	// strictly-before-today excluded; today inclusive
	assert.Equal(t, []int64{2, 4, 5}, ids)
}

func TestPublishedEvents_Limit(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/events"] = []domain.Event{
		{Id: 1, EventDate: "2025-07-01"},
		{Id: 2, EventDate: "2025-07-02"},
		{Id: 3, EventDate: "2025-07-03"},
	}

	events, err := cms.service().PublishedEvents(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestPublishedOpportunities_OngoingAlwaysIncluded(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/opportunities"] = []domain.Opportunity{
		{Id: 1, Title: "expired", Deadline: "2025-01-01", DeadlineType: "specific"},
		{Id: 2, Title: "ongoing with ancient deadline", Deadline: "2019-01-01", DeadlineType: "ongoing"},
		{Id: 3, Title: "closes today", Deadline: "2025-06-15", DeadlineType: "specific"},
		{Id: 4, Title: "ongoing no date", Deadline: "ongoing", DeadlineType: "ongoing"},
		{Id: 5, Title: "open", Deadline: "2025-08-01", DeadlineType: "specific"},
	}

	opportunities, err := cms.service().PublishedOpportunities(context.Background(), 0)
	require.NoError(t, err)

	var ids []int64
	for _, opp := range opportunities {
		ids = append(ids, opp.Id)
	}
	assert.Equal(t, []int64{2, 3, 4, 5}, ids)
}

func TestArchivedActivity_Pagination(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/activity"] = []domain.ActivityArticle{{Id: 1}}

	_, err := cms.service().ArchivedActivity(context.Background(), 9, 18)
	require.NoError(t, err)

	query := cms.lastURL["/items/activity"]
	assert.Contains(t, query, "limit=9")
	assert.Contains(t, query, "offset=18")
	assert.Contains(t, query, "is_archive")
}

func TestEventBySlug(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/events"] = []domain.Event{{Id: 7, Slug: "spring-open-studios-2025"}}

	ev, err := cms.service().EventBySlug(context.Background(), "spring-open-studios-2025")
	require.NoError(t, err)
	assert.EqualValues(t, 7, ev.Id)
}

func TestEventBySlug_NumericFallback(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/events"] = []domain.Event{} // no slug match
	cms.rows["/items/events/123"] = domain.Event{Id: 123, Title: "Legacy URL"}

	ev, err := cms.service().EventBySlug(context.Background(), "123")
	require.NoError(t, err)
	assert.EqualValues(t, 123, ev.Id)
}

func TestEventBySlug_NotFound(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/events"] = []domain.Event{}

	_, err := cms.service().EventBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityBySlug_SanitizesContent(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/activity"] = []domain.ActivityArticle{
		{Id: 1, Slug: "four-corners", Content: "<p>Hello</p><script>alert(1)</script>"},
	}

	article, err := cms.service().ActivityBySlug(context.Background(), "four-corners")
	require.NoError(t, err)
	assert.Contains(t, article.Content, "<p>Hello</p>")
	assert.NotContains(t, article.Content, "<script>")
}

func TestActivityByTag(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/activity"] = []domain.ActivityArticle{
		{Id: 1, GenericTags: []string{"Exhibitions"}},
		{Id: 2, ProjectTags: []string{"exhibitions"}},
		{Id: 3, GenericTags: []string{"Talks"}, ProjectTags: []string{"Mentoring"}},
	}

	articles, err := cms.service().ActivityByTag(context.Background(), "EXHIBITIONS")
	require.NoError(t, err)

	var ids []int64
	for _, a := range articles {
		ids = append(ids, a.Id)
	}
	// matched case-insensitively against either tag set
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestActivityByTagSlug_CanonicalName(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/project_tag_descriptions"] = []domain.ProjectTagDescription{
		{Id: 1, TagName: "Arts & Culture", Slug: "arts-culture"},
	}
	cms.rows["/items/activity"] = []domain.ActivityArticle{
		{Id: 1, ProjectTags: []string{"Arts & Culture"}},
		{Id: 2, ProjectTags: []string{"Mentoring"}},
	}

	// the curated description maps the slug back to the real tag name
	articles, err := cms.service().ActivityByTagSlug(context.Background(), "arts-culture")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, int64(1), articles[0].Id)
}

func TestActivityByTagSlug_WithoutDescription(t *testing.T) {
	cms := newFakeCMS(t)
	cms.statuses["/items/project_tag_descriptions"] = http.StatusForbidden
	cms.rows["/items/activity"] = []domain.ActivityArticle{
		{Id: 1, GenericTags: []string{"Arts & Culture"}},
		{Id: 2, GenericTags: []string{"Talks"}},
	}

	// no curated description: each article tag is slugged and compared, so a
	// name with punctuation still resolves from its own slug
	articles, err := cms.service().ActivityByTagSlug(context.Background(), TagNameToSlug("Arts & Culture"))
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, int64(1), articles[0].Id)
}

func TestActivityPage_DefaultsWhenUnconfigured(t *testing.T) {
	cms := newFakeCMS(t)
	cms.statuses["/items/activity_page"] = http.StatusForbidden

	page := cms.service().ActivityPage(context.Background())
	require.NotNil(t, page)
	assert.Equal(t, "CVAN EM Activity", page.HeroTitle)
}

func TestProjectTagDescriptions_MissingCollection(t *testing.T) {
	cms := newFakeCMS(t)
	cms.statuses["/items/project_tag_descriptions"] = http.StatusForbidden

	descriptions, err := cms.service().ProjectTagDescriptions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, descriptions)
}

func TestEmailTemplateByKey(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/email_templates"] = []domain.EmailTemplate{
		{TemplateKey: "event_published", Subject: "Your event is live"},
	}

	tmpl, err := cms.service().EmailTemplateByKey(context.Background(), "event_published")
	require.NoError(t, err)
	assert.Equal(t, "Your event is live", tmpl.Subject)
}

func TestEmailTemplateByKey_NotFound(t *testing.T) {
	cms := newFakeCMS(t)
	cms.rows["/items/email_templates"] = []domain.EmailTemplate{}

	_, err := cms.service().EmailTemplateByKey(context.Background(), "unregistered")
	assert.ErrorIs(t, err, ErrNotFound)
}
