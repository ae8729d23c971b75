package domain

// Moderation status of a publicly submitted record. New submissions always
// start as pending; only a CMS administrator moves them forward.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusRejected  = "rejected"
	StatusDraft     = "draft"
)

// Deadline classification for opportunities. DeadlineOngoing is the sentinel
// stored in the deadline field itself when there is no fixed closing date.
const (
	DeadlineTypeSpecific = "specific"
	DeadlineTypeOngoing  = "ongoing"
	DeadlineOngoing      = "ongoing"
)

// Dates are carried as the CMS returns them: "2006-01-02" strings.
// Rich-text fields (about, content, bio) are opaque formatted text.

type Event struct {
	Id              int64    `json:"id"`
	Status          string   `json:"status"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug,omitempty"`
	About           string   `json:"about"`
	Timing          string   `json:"timing"`
	EventDate       string   `json:"event_date"`
	EventEndDate    string   `json:"event_end_date,omitempty"`
	LocationAddress string   `json:"location_address"`
	ImageId         string   `json:"image_id,omitempty"`
	Link            string   `json:"link"`
	ContactEmail    string   `json:"contact_email"`
	SubmittedBy     string   `json:"submitted_by"`
	SubmittedAt     string   `json:"submitted_at,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
	EventType       []string `json:"event_type,omitempty"`
	AccessTags      []string `json:"access_tags,omitempty"`
	LocationTags    []string `json:"location_tags,omitempty"`
}

type Opportunity struct {
	Id                  int64    `json:"id"`
	Status              string   `json:"status"`
	Title               string   `json:"title"`
	Slug                string   `json:"slug,omitempty"`
	About               string   `json:"about"`
	Deadline            string   `json:"deadline"`
	DeadlineType        string   `json:"deadline_type"`
	WageFee             string   `json:"wage_fee"`
	LocationAddress     string   `json:"location_address"`
	ImageId             string   `json:"image_id,omitempty"`
	Link                string   `json:"link"`
	ContactEmail        string   `json:"contact_email"`
	SubmittedBy         string   `json:"submitted_by"`
	SubmittedAt         string   `json:"submitted_at,omitempty"`
	CreatedAt           string   `json:"created_at,omitempty"`
	UpdatedAt           string   `json:"updated_at,omitempty"`
	OpportunityTypeTags []string `json:"opportunity_type_tags,omitempty"`
	LocationTags        []string `json:"location_tags,omitempty"`
}

type ActivityArticle struct {
	Id              int64    `json:"id"`
	Status          string   `json:"status"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Excerpt         string   `json:"excerpt,omitempty"`
	Content         string   `json:"content"`
	FeaturedImageId string   `json:"featured_image_id,omitempty"`
	IsArchive       bool     `json:"is_archive"`
	PublishedAt     string   `json:"published_at,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
	GenericTags     []string `json:"generic_tags,omitempty"`
	ProjectTags     []string `json:"project_tags,omitempty"`
}

// TeamMember.Type is "team" or "steering_group".
type TeamMember struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Bio     string `json:"bio,omitempty"`
	Type    string `json:"type"`
	PhotoId string `json:"photo_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Order   int    `json:"order"`
}

type HomePage struct {
	HeroTitle                       string `json:"hero_title"`
	HeroSubtitle                    string `json:"hero_subtitle,omitempty"`
	HeroCtaPrimaryText              string `json:"hero_cta_primary_text,omitempty"`
	HeroCtaPrimaryLink              string `json:"hero_cta_primary_link,omitempty"`
	HeroCtaSecondaryText            string `json:"hero_cta_secondary_text,omitempty"`
	HeroCtaSecondaryLink            string `json:"hero_cta_secondary_link,omitempty"`
	ActivitySectionTitle            string `json:"activity_section_title,omitempty"`
	ActivitySectionDescription      string `json:"activity_section_description,omitempty"`
	EventsSectionTitle              string `json:"events_section_title,omitempty"`
	EventsSectionDescription        string `json:"events_section_description,omitempty"`
	OpportunitiesSectionTitle       string `json:"opportunities_section_title,omitempty"`
	OpportunitiesSectionDescription string `json:"opportunities_section_description,omitempty"`
}

type AboutPage struct {
	HeroTitle                string `json:"hero_title"`
	HeroDescription          string `json:"hero_description,omitempty"`
	WhoWeAreTitle            string `json:"who_we_are_title,omitempty"`
	WhoWeAreContent          string `json:"who_we_are_content,omitempty"`
	WhatWeDoTitle            string `json:"what_we_do_title,omitempty"`
	WhatWeDoContent          string `json:"what_we_do_content,omitempty"`
	HowWeWorkTitle           string `json:"how_we_work_title,omitempty"`
	HowWeWorkContent         string `json:"how_we_work_content,omitempty"`
	NationalNetworkTitle     string `json:"national_network_title,omitempty"`
	NationalNetworkContent   string `json:"national_network_content,omitempty"`
	AccessibilityTitle       string `json:"accessibility_title,omitempty"`
	AccessibilityContent     string `json:"accessibility_content,omitempty"`
	SteeringGroupDescription string `json:"steering_group_description,omitempty"`
}

type MentoringPage struct {
	HeroTitle           string `json:"hero_title"`
	HeroDescription     string `json:"hero_description,omitempty"`
	AboutProgrammeTitle string `json:"about_programme_title,omitempty"`
	AboutProgrammeText  string `json:"about_programme_content,omitempty"`
	WhoCanApplyTitle    string `json:"who_can_apply_title,omitempty"`
	WhoCanApplyContent  string `json:"who_can_apply_content,omitempty"`
	WhatWeOfferTitle    string `json:"what_we_offer_title,omitempty"`
	WhatWeOfferContent  string `json:"what_we_offer_content,omitempty"`
	GetInvolvedTitle    string `json:"get_involved_title,omitempty"`
	GetInvolvedContent  string `json:"get_involved_content,omitempty"`
	CalendlyURL         string `json:"calendly_url,omitempty"`
}

type ActivityPage struct {
	HeroTitle       string `json:"hero_title"`
	HeroDescription string `json:"hero_description,omitempty"`
}

// SubmissionFormPage is the shared shape of event_submission_form and
// opportunity_submission_form singletons.
type SubmissionFormPage struct {
	PageTitle      string `json:"page_title,omitempty"`
	IntroText      string `json:"intro_text,omitempty"`
	SuccessMessage string `json:"success_message,omitempty"`
	ReviewText     string `json:"review_text,omitempty"`
}

type ProjectTagDescription struct {
	Id          int64  `json:"id"`
	TagName     string `json:"tag_name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Sort        int    `json:"sort"`
}

// EmailTemplate is read-only from the application's perspective.
type EmailTemplate struct {
	Id          int64  `json:"id"`
	TemplateKey string `json:"template_key"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	FromName    string `json:"from_name"`
	FromEmail   string `json:"from_email"`
}
