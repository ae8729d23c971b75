package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cvan-em/artsnetwork/internal/logger"
	"github.com/cvan-em/artsnetwork/internal/middleware/metrics"
	"github.com/cvan-em/artsnetwork/internal/service"
	"github.com/cvan-em/artsnetwork/internal/validation"
)

type submissionResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	EventId int64             `json:"event_id,omitempty"`
	OppId   int64             `json:"opportunity_id,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SubmitEvent accepts the public event form as multipart/form-data with an
// optional "image" file part.
func (h *Handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	image, ok := h.parseSubmissionForm(w, r)
	if !ok {
		return
	}

	sub := &validation.EventSubmission{
		Title:           strings.TrimSpace(r.FormValue("title")),
		About:           strings.TrimSpace(r.FormValue("about")),
		Timing:          strings.TrimSpace(r.FormValue("timing")),
		EventDate:       r.FormValue("event_date"),
		EventEndDate:    r.FormValue("event_end_date"),
		LocationAddress: strings.TrimSpace(r.FormValue("location_address")),
		Link:            strings.TrimSpace(r.FormValue("link")),
		ContactEmail:    strings.TrimSpace(r.FormValue("contact_email")),
		SubmittedBy:     strings.TrimSpace(r.FormValue("submitted_by")),
		EventType:       parseTagField(r.FormValue("event_type")),
		AccessTags:      parseTagField(r.FormValue("access_tags")),
		LocationTags:    parseTagField(r.FormValue("location_tags")),
	}

	created, err := h.submission.SubmitEvent(r.Context(), sub, image)
	if err != nil {
		h.writeSubmissionError(w, "event", err)
		return
	}

	metrics.RecordSubmission("event", "created")
	writeJSONStatus(w, http.StatusCreated, submissionResponse{
		Success: true,
		Message: "Thank you! Your event has been submitted and is awaiting review.",
		EventId: created.Id,
	})
}

// SubmitOpportunity accepts the public opportunity form.
func (h *Handler) SubmitOpportunity(w http.ResponseWriter, r *http.Request) {
	image, ok := h.parseSubmissionForm(w, r)
	if !ok {
		return
	}

	sub := &validation.OpportunitySubmission{
		Title:               strings.TrimSpace(r.FormValue("title")),
		About:               strings.TrimSpace(r.FormValue("about")),
		Deadline:            r.FormValue("deadline"),
		DeadlineType:        r.FormValue("deadline_type"),
		WageFee:             strings.TrimSpace(r.FormValue("wage_fee")),
		LocationAddress:     strings.TrimSpace(r.FormValue("location_address")),
		Link:                strings.TrimSpace(r.FormValue("link")),
		ContactEmail:        strings.TrimSpace(r.FormValue("contact_email")),
		SubmittedBy:         strings.TrimSpace(r.FormValue("submitted_by")),
		OpportunityTypeTags: parseTagField(r.FormValue("opportunity_type_tags")),
		LocationTags:        parseTagField(r.FormValue("location_tags")),
	}

	created, err := h.submission.SubmitOpportunity(r.Context(), sub, image)
	if err != nil {
		h.writeSubmissionError(w, "opportunity", err)
		return
	}

	metrics.RecordSubmission("opportunity", "created")
	writeJSONStatus(w, http.StatusCreated, submissionResponse{
		Success: true,
		Message: "Thank you! Your opportunity has been submitted and is awaiting review.",
		OppId:   created.Id,
	})
}

// parseSubmissionForm bounds and parses the multipart body, then validates
// and reads the optional image part. On failure it has already written the
// response and returns ok=false.
func (h *Handler) parseSubmissionForm(w http.ResponseWriter, r *http.Request) (*service.ImageUpload, bool) {
	maxRequestSize := validation.CalculateMaxRequestSize(h.cfg.Public.MaxImageBytes, 1<<20)
	if err := validation.ValidateAndParseMultipart(r, w, maxRequestSize); err != nil {
		maxSizeMB := validation.FormatSizeMB(h.cfg.Public.MaxImageBytes)
		msg := fmt.Sprintf("Submission exceeds the limit of %.0f MB. Please use a smaller image.", maxSizeMB)
		writeJSONStatus(w, http.StatusRequestEntityTooLarge, submissionResponse{Success: false, Message: msg})
		return nil, false
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		return nil, true
	}

	fileHeader := files[0]
	mimeType, err := validation.ValidateImageHeader(fileHeader)
	if err != nil {
		writeJSONStatus(w, http.StatusBadRequest, submissionResponse{
			Success: false,
			Errors:  map[string]string{"image": err.Error()},
		})
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Log.Error("failed to open uploaded image", "filename", fileHeader.Filename, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Log.Error("failed to read uploaded image", "filename", fileHeader.Filename, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return nil, false
	}

	return &service.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: mimeType,
		Data:        data,
	}, true
}

func (h *Handler) writeSubmissionError(w http.ResponseWriter, kind string, err error) {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		metrics.RecordSubmission(kind, "invalid")
		writeJSONStatus(w, http.StatusBadRequest, submissionResponse{
			Success: false,
			Message: "Please correct the highlighted fields and try again.",
			Errors:  fieldErrs,
		})
		return
	}

	metrics.RecordSubmission(kind, "failed")
	logger.Log.Error("submission failed", "error", err)
	writeJSONStatus(w, http.StatusInternalServerError, submissionResponse{
		Success: false,
		Message: "Something went wrong saving your submission. Please try again later.",
	})
}

// parseTagField accepts either a JSON array ("[\"a\",\"b\"]") or a
// comma-separated list, which is how the two form clients send tag sets.
func parseTagField(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err == nil {
			if len(tags) == 0 {
				return nil
			}
			return tags
		}
	}

	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
