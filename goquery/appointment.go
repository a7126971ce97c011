package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mhaseeb/deptscrape"
)

// extractAppointment scans paragraphs for the appointment phrase
// (case-insensitively) and, on the first match, extracts the block's
// components: the booking phone number, the first link as the "click here"
// link, the app-brand mention, and store-badge images. Only the first
// matching paragraph is inspected.
func extractAppointment(doc *goquery.Document, cfg deptscrape.ExtractConfig) deptscrape.AppointmentBlock {
	var block deptscrape.AppointmentBlock
	phraseLower := strings.ToLower(cfg.AppointmentPhrase)

	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := deptscrape.CleanText(p.Text())
		if !strings.Contains(strings.ToLower(text), phraseLower) {
			return true
		}

		block.Present = true
		block.PhoneNumber = cfg.PhonePattern.FindString(text)
		block.MentionsFamilyApp = strings.Contains(strings.ToLower(text), strings.ToLower(cfg.AppBrandName))

		if link := p.Find("a[href]").First(); link.Length() > 0 {
			href, _ := link.Attr("href")
			block.ClickLink = &deptscrape.Link{
				Text: deptscrape.CleanText(link.Text()),
				URL:  href,
			}
		}

		p.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
			src, _ := img.Attr("src")
			src = strings.ToLower(src)
			if strings.Contains(src, "google play") || strings.Contains(src, "playstore") {
				block.HasPlayStore = true
			}
			if strings.Contains(src, "app store") || strings.Contains(src, "appstore") {
				block.HasAppStore = true
			}
		})

		return false
	})

	return block
}
