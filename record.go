package deptscrape

import (
	"strings"
	"time"
)

// PageType is one of six mutually exclusive structural archetypes a page is
// classified into. It is derived from the other record fields via Classify
// and never set independently.
type PageType string

// Page archetypes, in no particular order. Classification order lives in
// ClassificationRules.
const (
	PageTypeParentOverview PageType = "parent_overview"
	PageTypeServiceComplex PageType = "service_complex"
	PageTypeMultiSpecialty PageType = "multi_specialty"
	PageTypeSimple         PageType = "simple"
	PageTypeStructured     PageType = "structured"
	PageTypeStandard       PageType = "standard"
)

// FacultyPattern describes how many faculty links a page carries.
type FacultyPattern string

// Faculty link patterns, derived from the link count.
const (
	FacultyPatternNone     FacultyPattern = "none"
	FacultyPatternSingle   FacultyPattern = "single"
	FacultyPatternMultiple FacultyPattern = "multiple"
)

// LinkKind classifies an external link by its destination.
type LinkKind string

// Link kinds.
const (
	LinkKindInternal LinkKind = "internal"
	LinkKindExternal LinkKind = "external"
	LinkKindDocument LinkKind = "document"
)

// Link is a display-text/URL pair.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// FacultyLink is a link to the doctor-search page for one specialty.
type FacultyLink struct {
	Text      string `json:"text"`
	URL       string `json:"url"`
	Specialty string `json:"specialty"`
}

// ExternalLink is a link found anywhere in the document, classified by
// destination kind.
type ExternalLink struct {
	Text string   `json:"text"`
	URL  string   `json:"url"`
	Kind LinkKind `json:"kind"`
}

// BodyContent holds the extracted main-content text and its structural
// signals.
type BodyContent struct {
	Paragraphs             []string `json:"paragraphs"`
	WordCount              int      `json:"word_count"`
	HasSubheadings         bool     `json:"has_subheadings"`
	SubheadingLevels       []string `json:"subheading_levels"`
	HasBulletLists         bool     `json:"has_bullet_lists"`
	HasCollapsibleSections bool     `json:"has_collapsible_sections"`
	HasAppointmentMention  bool     `json:"has_appointment_mention"`
}

// Text returns the paragraphs joined with a blank-line separator.
func (b *BodyContent) Text() string {
	return strings.Join(b.Paragraphs, "\n\n")
}

// LinkGroup is an ordered collection of links with presence metadata.
type LinkGroup struct {
	Present bool   `json:"present"`
	Count   int    `json:"count"`
	Links   []Link `json:"links"`
}

// FacultyLinkGroup is the deduplicated collection of doctor-search links.
// Links contains no two entries with an identical (URL, Text) pair.
type FacultyLinkGroup struct {
	Count   int            `json:"count"`
	Pattern FacultyPattern `json:"pattern"`
	Links   []FacultyLink  `json:"links"`
}

// AppointmentBlock describes the appointment-booking section of a page,
// when one is present.
type AppointmentBlock struct {
	Present           bool   `json:"present"`
	PhoneNumber       string `json:"phone_number"`
	ClickLink         *Link  `json:"click_link,omitempty"`
	MentionsFamilyApp bool   `json:"mentions_family_app"`
	HasPlayStore      bool   `json:"has_play_store_button"`
	HasAppStore       bool   `json:"has_app_store_button"`
}

// PageRecord is the canonical extraction output for one page. It is
// assembled once per successfully fetched page and immutable afterwards.
type PageRecord struct {
	SourceURL         string           `json:"source_url"`
	Title             string           `json:"title"`
	Breadcrumb        string           `json:"breadcrumb"`
	HasPrimaryHeading bool             `json:"has_primary_heading"`
	Body              BodyContent      `json:"body"`
	SubsectionLinks   LinkGroup        `json:"subsection_links"`
	FacultyLinks      FacultyLinkGroup `json:"faculty_links"`
	Appointment       AppointmentBlock `json:"appointment"`
	ExternalLinks     []ExternalLink   `json:"external_links"`
	PageType          PageType         `json:"page_type"`

	// HeroImage is an optional local image path published alongside the
	// record as a CMS asset.
	HeroImage string `json:"hero_image,omitempty"`

	ContentHash string    `json:"content_hash,omitempty"`
	ScrapedAt   time.Time `json:"scraped_at,omitzero"`
}

// Validate returns an error if the record cannot be published.
func (r *PageRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return Errorf(EINVALID, "record title required")
	}
	return nil
}

// DeriveFacultyPattern maps a faculty link count to its pattern.
func DeriveFacultyPattern(count int) FacultyPattern {
	switch {
	case count == 1:
		return FacultyPatternSingle
	case count > 1:
		return FacultyPatternMultiple
	default:
		return FacultyPatternNone
	}
}
