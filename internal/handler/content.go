package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cvan-em/artsnetwork/internal/content"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

const defaultArchivePageSize = 9

// GetEvents lists published, not-yet-over events.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalIntQuery(r, "limit", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events, err := h.content.PublishedEvents(r.Context(), limit)
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"events": events})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	ev, err := h.content.EventBySlug(r.Context(), slug)
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"event": ev})
}

func (h *Handler) GetOpportunities(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalIntQuery(r, "limit", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opportunities, err := h.content.PublishedOpportunities(r.Context(), limit)
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"opportunities": opportunities})
}

func (h *Handler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	op, err := h.content.OpportunityBySlug(r.Context(), slug)
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"opportunity": op})
}

// GetActivity lists current (non-archive) activity articles.
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalIntQuery(r, "limit", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	articles, err := h.content.CurrentActivity(r.Context(), limit)
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"activities": articles})
}

// GetArchivedActivity pages through archived articles, 9 per page by default.
func (h *Handler) GetArchivedActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalIntQuery(r, "limit", defaultArchivePageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	offset, err := optionalIntQuery(r, "offset", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	articles, err := h.content.ArchivedActivity(r.Context(), limit, offset)
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	total, err := h.content.ArchivedActivityCount(r.Context())
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"activities": articles,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
	})
}

func (h *Handler) GetActivityByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	articles, err := h.content.ActivityByTagSlug(r.Context(), tag)
	if err != nil {
		h.writeContentError(w, err)
		return
	}

	// heading falls back to a title-cased slug when no curated description exists
	tagName := content.SlugToDisplayName(tag)
	response := map[string]any{"activities": articles}
	if desc, err := h.content.ProjectTagDescriptionBySlug(r.Context(), tag); err == nil && desc != nil {
		response["tag"] = desc
		tagName = desc.TagName
	}
	response["tag_name"] = tagName
	writeJSON(w, response)
}

func (h *Handler) GetActivityArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	article, err := h.content.ActivityBySlug(r.Context(), slug)
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"activity": article})
}

// GetTeam lists team members, optionally filtered by ?type=team or
// ?type=steering_group.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	members, err := h.content.TeamMembers(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"members": members})
}

func (h *Handler) GetProjectTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.content.ProjectTagDescriptions(r.Context())
	if err != nil {
		h.writeContentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"tags": tags})
}

// GetPage serves the singleton page content blocks by name. Unknown names
// are 404; missing CMS data falls back to defaults inside the service.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var page any
	switch name := chi.URLParam(r, "name"); name {
	case "home":
		page = h.content.HomePage(ctx)
	case "about":
		page = h.content.AboutPage(ctx)
	case "mentoring":
		page = h.content.MentoringPage(ctx)
	case "activity":
		page = h.content.ActivityPage(ctx)
	case "event-submission":
		page = h.content.EventSubmissionForm(ctx)
	case "opportunity-submission":
		page = h.content.OpportunitySubmissionForm(ctx)
	default:
		http.Error(w, "Unknown page", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"page": page})
}

func (h *Handler) writeContentError(w http.ResponseWriter, err error) {
	if errors.Is(err, content.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	logger.Log.Error("content query failed", "error", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

func optionalIntQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return parseIntParam(raw, name)
}
