package deptscrape

import "regexp"

// ExtractConfig carries the site-specific knobs the extraction engine needs.
// It is an immutable value passed into the extractor, never process-wide
// state, so extraction stays reentrant and parallel-safe.
type ExtractConfig struct {
	// ExcludedSections are boilerplate section titles whose paragraphs are
	// dropped from the body text.
	ExcludedSections []string

	// ContentSelectors are tried in order when locating the main content
	// region.
	ContentSelectors []string

	// ContentClassHints drive the fallback content-region search: a generic
	// container whose class contains one of these qualifies if it also
	// contains a paragraph or heading.
	ContentClassHints []string

	// NavAncestorHints mark list ancestors to skip during subsection-link
	// collection.
	NavAncestorHints []string

	// DoctorSearchPath is the URL path fragment identifying doctor-search
	// links.
	DoctorSearchPath string

	// SpecialtyParam is the query parameter carrying the specialty on
	// doctor-search URLs.
	SpecialtyParam string

	// FacultyTextHints qualify inline doctor-search links by display text
	// (matched case-insensitively).
	FacultyTextHints []string

	// OrgDomain is the organization's own domain; absolute links to other
	// hosts classify as external.
	OrgDomain string

	// DocumentExtensions classify links to downloadable documents.
	DocumentExtensions []string

	// AppointmentPhrase marks the appointment-booking section.
	AppointmentPhrase string

	// AppBrandName is the patient-app brand mentioned in appointment
	// sections.
	AppBrandName string

	// PhonePattern matches the booking phone number: three digits in
	// parentheses followed by nine digits, no separators.
	PhonePattern *regexp.Regexp

	// MinParagraphLength is the shortest paragraph kept in the body text.
	MinParagraphLength int
}

// DefaultConfig returns the extraction configuration for the hospital site.
func DefaultConfig() ExtractConfig {
	return ExtractConfig{
		ExcludedSections: []string{
			"Resources and Information",
			"Quick Links",
			"Website Policies",
			"© The Aga Khan University Hospital",
		},
		ContentSelectors: []string{
			"div.ContentMain",
			"div.MainContentZone",
			`div[role="main"]`,
			"article",
			"main",
		},
		ContentClassHints:  []string{"content", "main", "body", "article"},
		NavAncestorHints:   []string{"nav", "menu", "sidebar", "header", "footer"},
		DoctorSearchPath:   "/findadoctor.aspx",
		SpecialtyParam:     "Spec",
		FacultyTextHints:   []string{"meet our", "find a doctor", "faculty"},
		OrgDomain:          "aku.edu",
		DocumentExtensions: []string{".pdf", ".doc", ".docx", ".xlsx"},
		AppointmentPhrase:  "Request an Appointment",
		AppBrandName:       "Family Hifazat",
		PhonePattern:       regexp.MustCompile(`\(\d{3}\)\d{9}`),
		MinParagraphLength: 10,
	}
}
