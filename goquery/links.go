package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mhaseeb/deptscrape"
)

// extractFacultyLinks merges two collection patterns over the whole
// document: doctor-search links wrapped in h4 headings, and inline
// doctor-search links whose text carries one of the faculty hints. The
// merged set is deduplicated by (url, text).
func extractFacultyLinks(doc *goquery.Document, cfg deptscrape.ExtractConfig) deptscrape.FacultyLinkGroup {
	specialtyRe := specialtyPattern(cfg.SpecialtyParam)

	var links []deptscrape.FacultyLink
	seen := make(map[[2]string]bool)

	add := func(text, href string) {
		key := [2]string{href, text}
		if seen[key] {
			return
		}
		seen[key] = true
		links = append(links, deptscrape.FacultyLink{
			Text:      text,
			URL:       href,
			Specialty: specialtyFromURL(href, specialtyRe),
		})
	}

	doc.Find("h4").Each(func(_ int, h4 *goquery.Selection) {
		link := h4.Find("a[href]").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		if !strings.Contains(href, cfg.DoctorSearchPath) {
			return
		}
		add(deptscrape.CleanText(link.Text()), href)
	})

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.Contains(href, cfg.DoctorSearchPath) {
			return
		}
		text := deptscrape.CleanText(link.Text())
		lower := strings.ToLower(text)
		for _, hint := range cfg.FacultyTextHints {
			if strings.Contains(lower, strings.ToLower(hint)) {
				add(text, href)
				return
			}
		}
	})

	return deptscrape.FacultyLinkGroup{
		Count:   len(links),
		Pattern: deptscrape.DeriveFacultyPattern(len(links)),
		Links:   links,
	}
}

// specialtyPattern matches the specialty query parameter, capturing its raw
// (undecoded) value.
func specialtyPattern(param string) *regexp.Regexp {
	return regexp.MustCompile(`[?&]` + regexp.QuoteMeta(param) + `=([^&]+)`)
}

// specialtyFromURL returns the raw specialty parameter value, or "" when the
// URL carries none.
func specialtyFromURL(href string, re *regexp.Regexp) string {
	if m := re.FindStringSubmatch(href); m != nil {
		return m[1]
	}
	return ""
}

// extractSubsectionLinks collects department links from bullet lists inside
// the content region, skipping lists nested under navigation-classed
// ancestors. Only the first link of each direct list item is kept, and only
// when its text is longer than two characters and not a fragment reference.
func extractSubsectionLinks(content *goquery.Selection, cfg deptscrape.ExtractConfig) deptscrape.LinkGroup {
	var links []deptscrape.Link

	content.Find("ul").Each(func(_ int, ul *goquery.Selection) {
		if hasAncestorWithClassHint(ul, cfg.NavAncestorHints) {
			return
		}
		ul.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			link := li.Find("a[href]").First()
			if link.Length() == 0 {
				return
			}
			text := deptscrape.CleanText(link.Text())
			if len(text) <= 2 || strings.HasPrefix(text, "#") {
				return
			}
			href, _ := link.Attr("href")
			links = append(links, deptscrape.Link{Text: text, URL: href})
		})
	})

	return deptscrape.LinkGroup{
		Present: len(links) > 0,
		Count:   len(links),
		Links:   links,
	}
}

// extractExternalLinks classifies every link in the document with non-empty
// text and href, excluding doctor-search links and links inside
// breadcrumb-classed ancestors. Absolute links to hosts outside the
// organization's domain classify as external; document extensions classify
// as document; everything else is internal.
func extractExternalLinks(doc *goquery.Document, cfg deptscrape.ExtractConfig) []deptscrape.ExternalLink {
	var links []deptscrape.ExternalLink

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		text := deptscrape.CleanText(link.Text())
		if text == "" || href == "" {
			return
		}
		if strings.Contains(href, cfg.DoctorSearchPath) {
			return
		}
		if hasAncestorWithClassHint(link, []string{"breadcrumb"}) {
			return
		}
		links = append(links, deptscrape.ExternalLink{
			Text: text,
			URL:  href,
			Kind: classifyLink(href, cfg),
		})
	})

	return links
}

// classifyLink derives the link kind from its URL. External wins over
// document: a PDF hosted elsewhere is an external link.
func classifyLink(href string, cfg deptscrape.ExtractConfig) deptscrape.LinkKind {
	if u, err := url.Parse(href); err == nil && u.IsAbs() && u.Host != "" {
		host := strings.ToLower(u.Hostname())
		if host != cfg.OrgDomain && !strings.HasSuffix(host, "."+cfg.OrgDomain) {
			return deptscrape.LinkKindExternal
		}
	}
	lower := strings.ToLower(href)
	for _, ext := range cfg.DocumentExtensions {
		if strings.HasSuffix(lower, ext) {
			return deptscrape.LinkKindDocument
		}
	}
	return deptscrape.LinkKindInternal
}
