package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/cvan-em/artsnetwork/internal/domain"
)

const (
	titleMinLen = 3
	titleMaxLen = 200

	EventAboutWordLimit       = 80
	OpportunityAboutWordLimit = 150

	dateLayout = "2006-01-02"
)

// FieldErrors maps a form field name to a human-readable problem. Validation
// never panics or errors for expected invalid input; it reports per field.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// EventSubmission holds the raw field values of the public event form.
// Tag sets arrive already decoded from their JSON array form fields.
type EventSubmission struct {
	Title           string
	About           string
	Timing          string
	EventDate       string
	EventEndDate    string
	LocationAddress string
	Link            string
	ContactEmail    string
	SubmittedBy     string
	EventType       []string
	AccessTags      []string
	LocationTags    []string
}

// OpportunitySubmission holds the raw field values of the public opportunity form.
type OpportunitySubmission struct {
	Title               string
	About               string
	Deadline            string
	DeadlineType        string
	WageFee             string
	LocationAddress     string
	Link                string
	ContactEmail        string
	SubmittedBy         string
	OpportunityTypeTags []string
	LocationTags        []string
}

// CountWords counts whitespace-delimited non-empty tokens after trimming.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ValidateEvent checks every event form field against the submission rules.
// The returned map is nil when the submission is acceptable.
func ValidateEvent(s *EventSubmission, now time.Time) FieldErrors {
	errs := FieldErrors{}

	validateCommon(errs, s.Title, s.About, EventAboutWordLimit, s.Link, s.ContactEmail, s.SubmittedBy)

	if strings.TrimSpace(s.Timing) == "" {
		errs["timing"] = "timing is required"
	}
	if strings.TrimSpace(s.LocationAddress) == "" {
		errs["location_address"] = "location is required"
	}

	start, err := parseDate(s.EventDate)
	if err != nil {
		errs["event_date"] = "must be a valid date (YYYY-MM-DD)"
	} else if start.Before(midnight(now)) {
		errs["event_date"] = "event date must be today or in the future"
	}

	if s.EventEndDate != "" {
		end, err := parseDate(s.EventEndDate)
		if err != nil {
			errs["event_end_date"] = "must be a valid date (YYYY-MM-DD)"
		} else if !errs.has("event_date") && end.Before(start) {
			errs["event_end_date"] = "end date must be after start date"
		}
	}

	if len(s.EventType) == 0 {
		errs["event_type"] = "select at least one event type"
	}
	if len(s.LocationTags) == 0 {
		errs["location_tags"] = "select at least one location"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateOpportunity checks every opportunity form field. A deadline of the
// literal "ongoing" is exempt from the date-in-future rule.
func ValidateOpportunity(s *OpportunitySubmission, now time.Time) FieldErrors {
	errs := FieldErrors{}

	validateCommon(errs, s.Title, s.About, OpportunityAboutWordLimit, s.Link, s.ContactEmail, s.SubmittedBy)

	if strings.TrimSpace(s.LocationAddress) == "" {
		errs["location_address"] = "location is required"
	}
	if strings.TrimSpace(s.WageFee) == "" {
		errs["wage_fee"] = `specify wage/fee information or enter "N/A"`
	}

	switch s.DeadlineType {
	case domain.DeadlineTypeSpecific, domain.DeadlineTypeOngoing:
	default:
		errs["deadline_type"] = "deadline type must be specific or ongoing"
	}

	if s.Deadline != domain.DeadlineOngoing {
		deadline, err := parseDate(s.Deadline)
		if err != nil {
			errs["deadline"] = `must be a valid date (YYYY-MM-DD) or "ongoing"`
		} else if deadline.Before(midnight(now)) {
			errs["deadline"] = `deadline must be today or in the future, or "ongoing"`
		}
	}

	if len(s.OpportunityTypeTags) == 0 {
		errs["opportunity_type_tags"] = "select at least one opportunity type"
	}
	if len(s.LocationTags) == 0 {
		errs["location_tags"] = "select at least one location"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateCommon(errs FieldErrors, title, about string, aboutWordLimit int, link, contactEmail, submittedBy string) {
	if len(title) < titleMinLen {
		errs["title"] = fmt.Sprintf("title must be at least %d characters", titleMinLen)
	} else if len(title) > titleMaxLen {
		errs["title"] = fmt.Sprintf("title must be less than %d characters", titleMaxLen)
	}

	if len(strings.TrimSpace(about)) < 10 {
		errs["about"] = "description is required"
	} else if CountWords(about) > aboutWordLimit {
		errs["about"] = fmt.Sprintf("description must be %d words or fewer", aboutWordLimit)
	}

	if !isValidURL(link) {
		errs["link"] = "enter a valid URL"
	}

	if _, err := mail.ParseAddress(contactEmail); err != nil {
		errs["contact_email"] = "enter a valid email address"
	}

	if len(strings.TrimSpace(submittedBy)) < 2 {
		errs["submitted_by"] = "your name is required"
	}
}

func (e FieldErrors) has(field string) bool {
	_, ok := e[field]
	return ok
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
