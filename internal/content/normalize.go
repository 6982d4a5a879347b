// Package content reshapes CMS-sourced data into display-ready view models.
//
// Several CMS text fields use an ad-hoc delimited convention: one record per
// line, segments separated by "@", with the first segment naming the record.
// Legacy content predates the delimiter and carries bare names.
package content

import "strings"

// recordDelimiter separates segments inside one delimited CMS record.
const recordDelimiter = "@"

// BulletPoint is one supporting line under a parsed record.
type BulletPoint struct {
	Title string
}

// KeyFinding is one parsed key-finding record for a tool.
type KeyFinding struct {
	Title        string
	BulletPoints []BulletPoint
}

// PricingModel is one parsed pricing plan for a tool.
type PricingModel struct {
	Name     string
	Price    string
	Features []string
}

// Audience is one parsed who-is-it-for record for a tool.
type Audience struct {
	Name     string
	UseCases []string
}

// splitRecord breaks one raw line into its trimmed name and detail segments.
// The second return is false when the line has no usable name.
func splitRecord(line string) (string, []string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, false
	}
	segments := strings.Split(line, recordDelimiter)
	name := strings.TrimSpace(segments[0])
	if name == "" {
		return "", nil, false
	}
	details := make([]string, 0, len(segments)-1)
	for _, segment := range segments[1:] {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		details = append(details, segment)
	}
	return name, details, true
}

// NormalizeKeyFindings parses the delimited key-findings field into display
// records. Lines without a delimiter are legacy content and become a bare
// title. Every returned record has a non-empty title; malformed lines and
// empty input yield no records.
func NormalizeKeyFindings(raw string) []KeyFinding {
	findings := make([]KeyFinding, 0)
	for _, line := range strings.Split(raw, "\n") {
		title, details, ok := splitRecord(line)
		if !ok {
			continue
		}
		finding := KeyFinding{Title: title}
		for _, detail := range details {
			finding.BulletPoints = append(finding.BulletPoints, BulletPoint{Title: detail})
		}
		findings = append(findings, finding)
	}
	return findings
}

// ParsePricingModels parses the delimited pricing field into plans. The
// segment after the plan name is treated as the price tag when it reads like
// one; every other segment becomes a feature line.
func ParsePricingModels(raw string) []PricingModel {
	models := make([]PricingModel, 0)
	for _, line := range strings.Split(raw, "\n") {
		name, details, ok := splitRecord(line)
		if !ok {
			continue
		}
		model := PricingModel{Name: name}
		if len(details) > 0 && looksLikePrice(details[0]) {
			model.Price = details[0]
			details = details[1:]
		}
		model.Features = append(model.Features, details...)
		models = append(models, model)
	}
	return models
}

// ParseWhoIsItFor parses the delimited audience field into audience records
// with their use-case lines.
func ParseWhoIsItFor(raw string) []Audience {
	audiences := make([]Audience, 0)
	for _, line := range strings.Split(raw, "\n") {
		name, details, ok := splitRecord(line)
		if !ok {
			continue
		}
		audiences = append(audiences, Audience{Name: name, UseCases: details})
	}
	return audiences
}

// looksLikePrice reports whether a segment is a price tag rather than a
// feature line. Editors write prices as "$29/mo", "29€", "Free", or
// "Custom"; feature lines start with words.
func looksLikePrice(segment string) bool {
	lowered := strings.ToLower(strings.TrimSpace(segment))
	if lowered == "" {
		return false
	}
	switch lowered {
	case "free", "custom", "contact us", "contact sales":
		return true
	}
	first := lowered[0]
	if first >= '0' && first <= '9' {
		return true
	}
	return strings.HasPrefix(lowered, "$") ||
		strings.HasPrefix(lowered, "€") ||
		strings.HasPrefix(lowered, "£")
}
