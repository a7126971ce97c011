package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mhaseeb/deptscrape"
)

// subheadingTags are checked in order when recording subheading levels.
var subheadingTags = []string{"h2", "h3", "h4", "h5", "h6"}

// extractBody collects the body paragraphs and structural signals from the
// located content region.
func extractBody(content *goquery.Selection, cfg deptscrape.ExtractConfig) deptscrape.BodyContent {
	var paragraphs []string
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := deptscrape.CleanText(p.Text())
		if len(text) <= cfg.MinParagraphLength {
			return
		}
		for _, excluded := range cfg.ExcludedSections {
			if strings.Contains(text, excluded) {
				return
			}
		}
		paragraphs = append(paragraphs, text)
	})

	var levels []string
	for _, tag := range subheadingTags {
		if content.Find(tag).Length() > 0 {
			levels = append(levels, tag)
		}
	}

	body := deptscrape.BodyContent{
		Paragraphs:             paragraphs,
		HasSubheadings:         len(levels) > 0,
		SubheadingLevels:       levels,
		HasBulletLists:         content.Find("ul").Length() > 0 || content.Find("ol").Length() > 0,
		HasCollapsibleSections: hasCollapsibleSections(content),
	}
	body.WordCount = deptscrape.WordCount(body.Text())
	body.HasAppointmentMention = detectAppointmentMention(content, paragraphs, body.Text(), cfg)

	return body
}

// hasCollapsibleSections reports whether the region contains an h4 whose id
// attribute contains "collapse" (the site's accordion template).
func hasCollapsibleSections(content *goquery.Selection) bool {
	found := false
	content.Find("h4[id]").EachWithBreak(func(_ int, h4 *goquery.Selection) bool {
		id, _ := h4.Attr("id")
		if strings.Contains(strings.ToLower(id), "collapse") {
			found = true
			return false
		}
		return true
	})
	return found
}

// detectAppointmentMention applies the three-tier appointment detection:
//
//	tier 1: a <strong> containing the appointment phrase whose nearest
//	        enclosing div or p also carries the phone pattern or app brand
//	tier 2: any extracted paragraph containing the phrase together with the
//	        phone pattern, app brand, "Click here", or "call to book"
//	tier 3: the joined body text containing the phrase together with the
//	        phone pattern or app brand
//
// The phrase appears in visually distinct markup across page templates, so
// each tier trades precision for recall. The tiers overlap; they are kept
// separate rather than merged so each remains testable on its own.
func detectAppointmentMention(content *goquery.Selection, paragraphs []string, joined string, cfg deptscrape.ExtractConfig) bool {
	if strongTierMatches(content, cfg) {
		return true
	}

	for _, p := range paragraphs {
		if !strings.Contains(p, cfg.AppointmentPhrase) {
			continue
		}
		if cfg.PhonePattern.MatchString(p) ||
			strings.Contains(p, cfg.AppBrandName) ||
			strings.Contains(p, "Click here") ||
			strings.Contains(p, "call to book") {
			return true
		}
	}

	if strings.Contains(joined, cfg.AppointmentPhrase) {
		if cfg.PhonePattern.MatchString(joined) || strings.Contains(joined, cfg.AppBrandName) {
			return true
		}
	}

	return false
}

// strongTierMatches implements tier 1 of detectAppointmentMention.
func strongTierMatches(content *goquery.Selection, cfg deptscrape.ExtractConfig) bool {
	found := false
	content.Find("strong").EachWithBreak(func(_ int, strong *goquery.Selection) bool {
		if !strings.Contains(deptscrape.CleanText(strong.Text()), cfg.AppointmentPhrase) {
			return true
		}
		block := strong.Closest("div, p")
		if block.Length() == 0 {
			return true
		}
		text := deptscrape.CleanText(block.Text())
		if cfg.PhonePattern.MatchString(text) || strings.Contains(text, cfg.AppBrandName) {
			found = true
			return false
		}
		return true
	})
	return found
}
