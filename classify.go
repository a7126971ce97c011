package deptscrape

// ClassificationRule pairs a predicate with the archetype it selects.
// Rules are evaluated top to bottom; the first match wins.
type ClassificationRule struct {
	Name   string
	Match  func(r *PageRecord) bool
	Result PageType
}

// ClassificationRules returns the ordered decision list mapping a record to
// its archetype. The ordering is deliberate: overview pages are detected
// first because subsection lists override all content-shape signals, and a
// missing primary heading or collapsible sections both mark a complex
// service template regardless of faculty-link count, so those rules precede
// the faculty-count rules.
func ClassificationRules() []ClassificationRule {
	return []ClassificationRule{
		{
			Name:   "subsection links present",
			Match:  func(r *PageRecord) bool { return r.SubsectionLinks.Present },
			Result: PageTypeParentOverview,
		},
		{
			Name:   "no primary heading",
			Match:  func(r *PageRecord) bool { return !r.HasPrimaryHeading },
			Result: PageTypeServiceComplex,
		},
		{
			Name:   "collapsible sections",
			Match:  func(r *PageRecord) bool { return r.Body.HasCollapsibleSections },
			Result: PageTypeServiceComplex,
		},
		{
			Name:   "more than three faculty links",
			Match:  func(r *PageRecord) bool { return r.FacultyLinks.Count > 3 },
			Result: PageTypeMultiSpecialty,
		},
		{
			Name:   "single faculty link without appointment section",
			Match:  func(r *PageRecord) bool { return r.FacultyLinks.Count == 1 && !r.Appointment.Present },
			Result: PageTypeSimple,
		},
		{
			Name:   "subheadings without faculty links",
			Match:  func(r *PageRecord) bool { return r.Body.HasSubheadings && r.FacultyLinks.Count == 0 },
			Result: PageTypeStructured,
		},
	}
}

// Classify assigns the archetype for a record. It is a pure function of the
// record's extracted fields and always returns one of the six PageType
// values, defaulting to PageTypeStandard when no rule matches.
func Classify(r *PageRecord) PageType {
	for _, rule := range ClassificationRules() {
		if rule.Match(r) {
			return rule.Result
		}
	}
	return PageTypeStandard
}
