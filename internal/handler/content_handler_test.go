package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvan-em/artsnetwork/internal/content"
	"github.com/cvan-em/artsnetwork/internal/domain"
)

func TestGetEvents(t *testing.T) {
	h, _, contentSvc, _ := newTestHandler()

	contentSvc.publishedEventsFunc = func(ctx context.Context, limit int) ([]domain.Event, error) {
		assert.Equal(t, 3, limit)
		return []domain.Event{{Id: 1, Title: "One"}, {Id: 2, Title: "Two"}}, nil
	}

	rr := httptest.NewRecorder()
	h.GetEvents(rr, httptest.NewRequest(http.MethodGet, "/api/events?limit=3", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Events []domain.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Events, 2)
}

func TestGetEventsBadLimit(t *testing.T) {
	h, _, _, _ := newTestHandler()

	rr := httptest.NewRecorder()
	h.GetEvents(rr, httptest.NewRequest(http.MethodGet, "/api/events?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetEventNotFound(t *testing.T) {
	h, _, contentSvc, _ := newTestHandler()

	contentSvc.eventBySlugFunc = func(ctx context.Context, slug string) (*domain.Event, error) {
		return nil, content.ErrNotFound
	}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/events/nope", nil), "slug", "nope")
	rr := httptest.NewRecorder()
	h.GetEvent(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetArchivedActivityDefaults(t *testing.T) {
	h, _, contentSvc, _ := newTestHandler()

	var gotLimit, gotOffset int
	contentSvc.archivedActivityFunc = func(ctx context.Context, limit, offset int) ([]domain.ActivityArticle, error) {
		gotLimit, gotOffset = limit, offset
		return []domain.ActivityArticle{{Id: 1}}, nil
	}
	contentSvc.archivedActivityCountFunc = func(ctx context.Context) (int, error) {
		return 27, nil
	}

	rr := httptest.NewRecorder()
	h.GetArchivedActivity(rr, httptest.NewRequest(http.MethodGet, "/api/activity/archived", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, defaultArchivePageSize, gotLimit)
	assert.Equal(t, 0, gotOffset)

	var resp struct {
		Total  int `json:"total"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 27, resp.Total)
	assert.Equal(t, defaultArchivePageSize, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
}

func TestGetArchivedActivityPaging(t *testing.T) {
	h, _, contentSvc, _ := newTestHandler()

	var gotLimit, gotOffset int
	contentSvc.archivedActivityFunc = func(ctx context.Context, limit, offset int) ([]domain.ActivityArticle, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	rr := httptest.NewRecorder()
	h.GetArchivedActivity(rr, httptest.NewRequest(http.MethodGet, "/api/activity/archived?limit=6&offset=12", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 6, gotLimit)
	assert.Equal(t, 12, gotOffset)
}

func TestGetActivityByTagPassesSlug(t *testing.T) {
	h, _, contentSvc, _ := newTestHandler()

	var gotSlug string
	contentSvc.activityByTagSlugFunc = func(ctx context.Context, slug string) ([]domain.ActivityArticle, error) {
		gotSlug = slug
		return nil, nil
	}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/activity/tag/four-corners", nil), "tag", "four-corners")
	rr := httptest.NewRecorder()
	h.GetActivityByTag(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "four-corners", gotSlug)
	// no curated description in the mock, heading falls back to the title-cased slug
	assert.Contains(t, rr.Body.String(), `"tag_name":"Four Corners"`)
}

func TestGetTeamPassesTypeFilter(t *testing.T) {
	h, _, contentSvc, _ := newTestHandler()

	var gotType string
	contentSvc.teamMembersFunc = func(ctx context.Context, memberType string) ([]domain.TeamMember, error) {
		gotType = memberType
		return []domain.TeamMember{{Name: "A"}}, nil
	}

	rr := httptest.NewRecorder()
	h.GetTeam(rr, httptest.NewRequest(http.MethodGet, "/api/team?type=steering_group", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "steering_group", gotType)
}

func TestGetPage(t *testing.T) {
	h, _, _, _ := newTestHandler()

	for _, name := range []string{"home", "about", "mentoring", "activity", "event-submission", "opportunity-submission"} {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/pages/"+name, nil), "name", name)
		rr := httptest.NewRecorder()
		h.GetPage(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, "page %s", name)
	}
}

func TestGetPageUnknown(t *testing.T) {
	h, _, _, _ := newTestHandler()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/pages/nope", nil), "name", "nope")
	rr := httptest.NewRecorder()
	h.GetPage(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
