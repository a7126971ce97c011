package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mhaseeb/deptscrape"
)

// Locate finds the main content region of a document. Precedence:
//
//  1. first match of the configured structural selectors
//  2. first generic div whose class contains a content hint and which holds
//     at least one paragraph or heading
//  3. the document body
//  4. the document root
//
// Locate is deterministic and never fails; it always returns a non-nil
// selection.
func Locate(doc *goquery.Document, cfg deptscrape.ExtractConfig) *goquery.Selection {
	for _, selector := range cfg.ContentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}

	var fallback *goquery.Selection
	doc.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		if !classContainsAny(div, cfg.ContentClassHints) {
			return true
		}
		if div.Find("p").Length() == 0 && div.Find("h1").Length() == 0 && div.Find("h2").Length() == 0 {
			return true
		}
		fallback = div
		return false
	})
	if fallback != nil {
		return fallback
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// classContains reports whether the selection's class attribute textually
// contains the substring, case-insensitively.
func classContains(sel *goquery.Selection, substr string) bool {
	class, ok := sel.Attr("class")
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(class), strings.ToLower(substr))
}

// classContainsAny reports whether the class attribute contains any of the
// given substrings.
func classContainsAny(sel *goquery.Selection, substrs []string) bool {
	class, ok := sel.Attr("class")
	if !ok {
		return false
	}
	lower := strings.ToLower(class)
	for _, s := range substrs {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// hasAncestorWithClassHint reports whether any ancestor of the selection has
// a class attribute containing one of the hints.
func hasAncestorWithClassHint(sel *goquery.Selection, hints []string) bool {
	found := false
	sel.Parents().EachWithBreak(func(_ int, parent *goquery.Selection) bool {
		if classContainsAny(parent, hints) {
			found = true
			return false
		}
		return true
	})
	return found
}
