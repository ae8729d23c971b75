package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cvan-em/artsnetwork/internal/content"
	"github.com/cvan-em/artsnetwork/internal/domain"
	"github.com/cvan-em/artsnetwork/internal/imaging"
	"github.com/cvan-em/artsnetwork/internal/logger"
	"github.com/cvan-em/artsnetwork/internal/validation"
)

// CMSClient is the slice of the CMS API the submission service needs.
type CMSClient interface {
	UploadFile(ctx context.Context, filename, contentType string, data []byte) (string, error)
	CreateItem(ctx context.Context, collection string, item any, out any) error
}

// SubmissionMailer sends the confirmation/notification pair after a record
// has been created.
type SubmissionMailer interface {
	SendEventSubmissionEmails(ctx context.Context, ev *domain.Event) error
	SendOpportunitySubmissionEmails(ctx context.Context, op *domain.Opportunity) error
}

// ImageUpload carries an optional form image through the pipeline.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Submission creates moderated records from public form input. Images are
// normalized and uploaded first; a failed upload downgrades the record to
// imageless instead of rejecting the submission.
type Submission struct {
	cms      CMSClient
	mailer   SubmissionMailer
	notifier *Notifier
	imaging  imaging.Options
	now      func() time.Time
}

func NewSubmission(cms CMSClient, mailer SubmissionMailer, notifier *Notifier, opts imaging.Options) *Submission {
	return &Submission{
		cms:      cms,
		mailer:   mailer,
		notifier: notifier,
		imaging:  opts,
		now:      time.Now,
	}
}

// SubmitEvent validates the form, stores the record as pending and queues
// the notification emails. Field errors come back as validation.FieldErrors.
func (s *Submission) SubmitEvent(ctx context.Context, sub *validation.EventSubmission, image *ImageUpload) (*domain.Event, error) {
	if errs := validation.ValidateEvent(sub, s.now()); errs != nil {
		return nil, errs
	}

	imageId := s.uploadImage(ctx, image)

	record := map[string]any{
		"status":           domain.StatusPending,
		"title":            sub.Title,
		"slug":             domain.Slugify(sub.Title),
		"about":            sub.About,
		"timing":           sub.Timing,
		"event_date":       sub.EventDate,
		"location_address": sub.LocationAddress,
		"link":             sub.Link,
		"contact_email":    sub.ContactEmail,
		"submitted_by":     sub.SubmittedBy,
		"submitted_at":     s.now().UTC().Format(time.RFC3339),
		"event_type":       tagsJSON(sub.EventType),
		"access_tags":      tagsJSON(sub.AccessTags),
		"location_tags":    tagsJSON(sub.LocationTags),
	}
	if sub.EventEndDate != "" {
		record["event_end_date"] = sub.EventEndDate
	}
	if imageId != "" {
		record["image_id"] = imageId
	}

	var created domain.Event
	if err := s.cms.CreateItem(ctx, content.CollectionEvents, record, &created); err != nil {
		return nil, fmt.Errorf("create event record: %w", err)
	}
	logger.Log.Info("event submission created", "event_id", created.Id, "title", created.Title)

	// The job outlives the request, so it gets a fresh context.
	ev := created
	s.notifier.Enqueue("event submission emails", func() error {
		return s.mailer.SendEventSubmissionEmails(context.Background(), &ev)
	})
	return &created, nil
}

// SubmitOpportunity is the opportunity-side counterpart of SubmitEvent.
func (s *Submission) SubmitOpportunity(ctx context.Context, sub *validation.OpportunitySubmission, image *ImageUpload) (*domain.Opportunity, error) {
	if errs := validation.ValidateOpportunity(sub, s.now()); errs != nil {
		return nil, errs
	}

	imageId := s.uploadImage(ctx, image)

	record := map[string]any{
		"status":                domain.StatusPending,
		"title":                 sub.Title,
		"slug":                  domain.Slugify(sub.Title),
		"about":                 sub.About,
		"deadline":              sub.Deadline,
		"deadline_type":         sub.DeadlineType,
		"wage_fee":              sub.WageFee,
		"location_address":      sub.LocationAddress,
		"link":                  sub.Link,
		"contact_email":         sub.ContactEmail,
		"submitted_by":          sub.SubmittedBy,
		"submitted_at":          s.now().UTC().Format(time.RFC3339),
		"opportunity_type_tags": tagsJSON(sub.OpportunityTypeTags),
		"location_tags":         tagsJSON(sub.LocationTags),
	}
	if imageId != "" {
		record["image_id"] = imageId
	}

	var created domain.Opportunity
	if err := s.cms.CreateItem(ctx, content.CollectionOpportunities, record, &created); err != nil {
		return nil, fmt.Errorf("create opportunity record: %w", err)
	}
	logger.Log.Info("opportunity submission created", "opportunity_id", created.Id, "title", created.Title)

	op := created
	s.notifier.Enqueue("opportunity submission emails", func() error {
		return s.mailer.SendOpportunitySubmissionEmails(context.Background(), &op)
	})
	return &created, nil
}

// uploadImage normalizes and uploads the image, returning the file id or ""
// when there is no image or any step fails. A submission is never rejected
// because its image could not be stored.
func (s *Submission) uploadImage(ctx context.Context, image *ImageUpload) string {
	if image == nil || len(image.Data) == 0 {
		return ""
	}

	result, err := imaging.Normalize(image.Data, image.ContentType, s.imaging)
	if err != nil {
		logger.Log.Error("image normalization failed, continuing without image", "filename", image.Filename, "error", err)
		return ""
	}
	if result.Compressed {
		logger.Log.Info("image compressed",
			"filename", image.Filename,
			"original_bytes", result.OriginalBytes,
			"final_bytes", result.FinalBytes,
			"width", result.Width,
			"height", result.Height)
	}

	id, err := s.cms.UploadFile(ctx, image.Filename, result.ContentType, result.Data)
	if err != nil {
		logger.Log.Error("image upload failed, continuing without image", "filename", image.Filename, "error", err)
		return ""
	}
	return id
}

// tagsJSON renders a tag list the way the CMS stores JSON fields. An empty
// list becomes an empty JSON array rather than null.
func tagsJSON(tags []string) json.RawMessage {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return data
}
