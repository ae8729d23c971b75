package mailer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cvan-em/artsnetwork/internal/domain"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

// Template keys registered in the CMS email_templates collection.
const (
	TemplateEventSubmission            = "event_submission"
	TemplateEventSubmissionAdmin       = "event_submission_admin"
	TemplateEventPublished             = "event_published"
	TemplateOpportunitySubmission      = "opportunity_submission"
	TemplateOpportunitySubmissionAdmin = "opportunity_submission_admin"
	TemplateOpportunityPublished       = "opportunity_published"
)

// Sender delivers a single rendered message.
type Sender interface {
	Send(fromName, fromEmail, recipient, subject, htmlBody string) error
}

// TemplateStore resolves a template by its key. Satisfied by the content
// service backed by the CMS.
type TemplateStore interface {
	EmailTemplateByKey(ctx context.Context, key string) (*domain.EmailTemplate, error)
}

// Templated renders CMS-managed templates and hands them to a Sender.
type Templated struct {
	sender     Sender
	store      TemplateStore
	siteURL    string
	cmsURL     string
	adminEmail string
}

func NewTemplated(sender Sender, store TemplateStore, siteURL, cmsURL, adminEmail string) *Templated {
	return &Templated{
		sender:     sender,
		store:      store,
		siteURL:    strings.TrimRight(siteURL, "/"),
		cmsURL:     strings.TrimRight(cmsURL, "/"),
		adminEmail: adminEmail,
	}
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// SubstitutePlaceholders replaces {{name}} tokens with their values.
// Tokens without a matching variable are left in place so a misconfigured
// template is visible in the delivered mail rather than silently blanked.
func SubstitutePlaceholders(text string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// SendTemplated looks up the template for key, substitutes vars into both
// subject and body and sends the result to recipient.
func (t *Templated) SendTemplated(ctx context.Context, key, recipient string, vars map[string]string) error {
	tmpl, err := t.store.EmailTemplateByKey(ctx, key)
	if err != nil {
		return fmt.Errorf("load email template %q: %w", key, err)
	}

	subject := SubstitutePlaceholders(tmpl.Subject, vars)
	body := SubstitutePlaceholders(tmpl.Body, vars)

	if err := t.sender.Send(tmpl.FromName, tmpl.FromEmail, recipient, subject, body); err != nil {
		return fmt.Errorf("send %q to %s: %w", key, recipient, err)
	}

	logger.Log.Info("email sent", "template", key, "recipient", recipient)
	return nil
}

// SendEventSubmissionEmails sends the submitter confirmation and the admin
// notification for a freshly created event. Each failure is logged and the
// first error is returned; the admin mail is still attempted when the
// confirmation fails.
func (t *Templated) SendEventSubmissionEmails(ctx context.Context, ev *domain.Event) error {
	vars := t.eventVars(ev)

	var firstErr error
	if ev.ContactEmail != "" {
		if err := t.SendTemplated(ctx, TemplateEventSubmission, ev.ContactEmail, vars); err != nil {
			logger.Log.Error("failed to send event confirmation", "event_id", ev.Id, "error", err)
			firstErr = err
		}
	}
	if t.adminEmail != "" {
		if err := t.SendTemplated(ctx, TemplateEventSubmissionAdmin, t.adminEmail, vars); err != nil {
			logger.Log.Error("failed to send event admin notification", "event_id", ev.Id, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// SendOpportunitySubmissionEmails mirrors SendEventSubmissionEmails for
// opportunity submissions.
func (t *Templated) SendOpportunitySubmissionEmails(ctx context.Context, op *domain.Opportunity) error {
	vars := t.opportunityVars(op)

	var firstErr error
	if op.ContactEmail != "" {
		if err := t.SendTemplated(ctx, TemplateOpportunitySubmission, op.ContactEmail, vars); err != nil {
			logger.Log.Error("failed to send opportunity confirmation", "opportunity_id", op.Id, "error", err)
			firstErr = err
		}
	}
	if t.adminEmail != "" {
		if err := t.SendTemplated(ctx, TemplateOpportunitySubmissionAdmin, t.adminEmail, vars); err != nil {
			logger.Log.Error("failed to send opportunity admin notification", "opportunity_id", op.Id, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// SendEventPublished notifies the submitter that their event is live.
func (t *Templated) SendEventPublished(ctx context.Context, ev *domain.Event) error {
	if ev.ContactEmail == "" {
		logger.Log.Warn("event has no contact email, skipping published notification", "event_id", ev.Id)
		return nil
	}
	return t.SendTemplated(ctx, TemplateEventPublished, ev.ContactEmail, t.eventVars(ev))
}

// SendOpportunityPublished notifies the submitter that their opportunity is live.
func (t *Templated) SendOpportunityPublished(ctx context.Context, op *domain.Opportunity) error {
	if op.ContactEmail == "" {
		logger.Log.Warn("opportunity has no contact email, skipping published notification", "opportunity_id", op.Id)
		return nil
	}
	return t.SendTemplated(ctx, TemplateOpportunityPublished, op.ContactEmail, t.opportunityVars(op))
}

func (t *Templated) eventVars(ev *domain.Event) map[string]string {
	return map[string]string{
		"title":         ev.Title,
		"event_date":    formatLongDate(ev.EventDate),
		"end_date":      formatLongDate(ev.EventEndDate),
		"timing":        ev.Timing,
		"location":      ev.LocationAddress,
		"submitted_by":  ev.SubmittedBy,
		"contact_email": ev.ContactEmail,
		"event_url":     fmt.Sprintf("%s/whats-on/%s", t.siteURL, slugOrId(ev.Slug, ev.Id)),
		"site_url":      t.siteURL,
		"admin_url":     fmt.Sprintf("%s/admin/content/events/%d", t.cmsURL, ev.Id),
	}
}

func (t *Templated) opportunityVars(op *domain.Opportunity) map[string]string {
	return map[string]string{
		"title":           op.Title,
		"deadline":        formatDeadline(op.Deadline),
		"wage_fee":        valueOr(op.WageFee, "Not specified"),
		"location":        op.LocationAddress,
		"submitted_by":    op.SubmittedBy,
		"contact_email":   op.ContactEmail,
		"opportunity_url": fmt.Sprintf("%s/opportunities/%s", t.siteURL, slugOrId(op.Slug, op.Id)),
		"site_url":        t.siteURL,
		"admin_url":       fmt.Sprintf("%s/admin/content/opportunities/%d", t.cmsURL, op.Id),
	}
}

// formatLongDate renders a stored "2006-01-02" date the way the public site
// does, e.g. "Monday, 2 June 2025". Unparseable or empty values pass through.
func formatLongDate(date string) string {
	if date == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, 2 January 2006")
}

func formatDeadline(deadline string) string {
	if deadline == domain.DeadlineOngoing {
		return "Ongoing"
	}
	return formatLongDate(deadline)
}

// slugOrId picks the URL path segment for a record. Older records created
// before slug generation have an empty slug; the site also resolves them
// by numeric id.
func slugOrId(slug string, id int64) string {
	if slug == "" {
		return strconv.FormatInt(id, 10)
	}
	return slug
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
