// Package goquery implements the page extraction engine on top of
// github.com/PuerkitoBio/goquery. All field extractors operate on the parsed
// document or its located content region and are pure: missing elements
// produce empty fallbacks, never errors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mhaseeb/deptscrape"
)

// Ensure Extractor implements deptscrape.RecordExtractor at compile time.
var _ deptscrape.RecordExtractor = (*Extractor)(nil)

// Extractor assembles canonical page records from raw HTML.
type Extractor struct {
	cfg deptscrape.ExtractConfig
}

// NewExtractor creates an Extractor with the given configuration.
func NewExtractor(cfg deptscrape.ExtractConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract parses the document, runs every field extractor, and returns the
// assembled record with its archetype classification. The only error path
// is unparseable input; extraction over a parsed document is total.
func (e *Extractor) Extract(sourceURL, html string) (*deptscrape.PageRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, deptscrape.Errorf(deptscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	content := Locate(doc, e.cfg)

	record := &deptscrape.PageRecord{
		SourceURL:         sourceURL,
		Title:             extractTitle(doc),
		Breadcrumb:        extractBreadcrumb(doc),
		HasPrimaryHeading: doc.Find("h1").Length() > 0,
		Body:              extractBody(content, e.cfg),
		SubsectionLinks:   extractSubsectionLinks(content, e.cfg),
		FacultyLinks:      extractFacultyLinks(doc, e.cfg),
		Appointment:       extractAppointment(doc, e.cfg),
		ExternalLinks:     extractExternalLinks(doc, e.cfg),
	}
	record.PageType = deptscrape.Classify(record)

	return record, nil
}

// extractTitle returns the first h1 text, falling back to the first h2 and
// then the literal "Untitled". Headings whose cleaned text is empty are
// skipped so the title is always non-empty.
func extractTitle(doc *goquery.Document) string {
	for _, tag := range []string{"h1", "h2"} {
		if title := deptscrape.CleanText(doc.Find(tag).First().Text()); title != "" {
			return title
		}
	}
	return "Untitled"
}

// extractBreadcrumb joins the link texts of the first breadcrumb-classed
// container (div, then nav) with " > ". Returns "" when no breadcrumb
// container with links exists.
func extractBreadcrumb(doc *goquery.Document) string {
	var container *goquery.Selection
	for _, tag := range []string{"div", "nav"} {
		doc.Find(tag).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if classContains(sel, "breadcrumb") {
				container = sel
				return false
			}
			return true
		})
		if container != nil {
			break
		}
	}
	if container == nil {
		return ""
	}

	var parts []string
	container.Find("a").Each(func(_ int, link *goquery.Selection) {
		parts = append(parts, deptscrape.CleanText(link.Text()))
	})
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " > ")
}
