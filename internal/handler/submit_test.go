package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvan-em/artsnetwork/internal/domain"
	"github.com/cvan-em/artsnetwork/internal/service"
	"github.com/cvan-em/artsnetwork/internal/validation"
)

func TestSubmitEventSuccess(t *testing.T) {
	h, submission, _, _ := newTestHandler()

	var gotSub *validation.EventSubmission
	submission.submitEventFunc = func(ctx context.Context, sub *validation.EventSubmission, image *service.ImageUpload) (*domain.Event, error) {
		gotSub = sub
		return &domain.Event{Id: 42, Title: sub.Title}, nil
	}

	body, contentType := eventForm(t, validEventFields())
	req := httptest.NewRequest(http.MethodPost, "/api/events/submit", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	h.SubmitEvent(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp submissionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.EventId)

	require.NotNil(t, gotSub)
	assert.Equal(t, "Spring Open Studios 2025", gotSub.Title)
	assert.Equal(t, []string{"exhibition"}, gotSub.EventType)
	assert.Equal(t, []string{"nottingham"}, gotSub.LocationTags)
}

func TestSubmitEventValidationErrors(t *testing.T) {
	h, submission, _, _ := newTestHandler()

	submission.submitEventFunc = func(ctx context.Context, sub *validation.EventSubmission, image *service.ImageUpload) (*domain.Event, error) {
		return nil, validation.FieldErrors{"title": "Title must be at least 3 characters"}
	}

	body, contentType := eventForm(t, map[string]string{"title": "ab"})
	req := httptest.NewRequest(http.MethodPost, "/api/events/submit", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	h.SubmitEvent(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp submissionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "title")
}

func TestSubmitEventServiceFailure(t *testing.T) {
	h, submission, _, _ := newTestHandler()

	submission.submitEventFunc = func(ctx context.Context, sub *validation.EventSubmission, image *service.ImageUpload) (*domain.Event, error) {
		return nil, assert.AnError
	}

	body, contentType := eventForm(t, validEventFields())
	req := httptest.NewRequest(http.MethodPost, "/api/events/submit", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	h.SubmitEvent(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSubmitEventNotMultipart(t *testing.T) {
	h, _, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/events/submit", nil)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.SubmitEvent(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestSubmitOpportunitySuccess(t *testing.T) {
	h, submission, _, _ := newTestHandler()

	var gotSub *validation.OpportunitySubmission
	submission.submitOpportunityFunc = func(ctx context.Context, sub *validation.OpportunitySubmission, image *service.ImageUpload) (*domain.Opportunity, error) {
		gotSub = sub
		return &domain.Opportunity{Id: 7, Title: sub.Title}, nil
	}

	body, contentType := eventForm(t, map[string]string{
		"title":                 "Studio Residency",
		"about":                 "A six month funded residency with studio space and mentoring support included.",
		"deadline":              "ongoing",
		"deadline_type":         "ongoing",
		"contact_email":         "maker@example.com",
		"submitted_by":          "M. Maker",
		"opportunity_type_tags": `["residency","funding"]`,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/opportunities/submit", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	h.SubmitOpportunity(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp submissionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), resp.OppId)

	require.NotNil(t, gotSub)
	assert.Equal(t, []string{"residency", "funding"}, gotSub.OpportunityTypeTags)
}

func TestParseTagField(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"json array", `["a","b"]`, []string{"a", "b"}},
		{"comma separated", "a, b ,c", []string{"a", "b", "c"}},
		{"single value", "exhibition", []string{"exhibition"}},
		{"empty", "", nil},
		{"empty json array", "[]", nil},
		{"whitespace only", "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseTagField(tt.raw))
		})
	}
}
