// Package deptscrape extracts structured records from hospital department
// web pages and republishes them as entries in a headless CMS. It locates
// the main content region of each page, runs a set of rule-based field
// extractors over it, classifies the page into one of six structural
// archetypes, and persists the result as a JSON record for later publishing.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, storyblok/, fs/).
package deptscrape
