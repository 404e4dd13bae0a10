package service

import "strings"

// ItemAttributes is the caller-supplied description of a catalogued item.
type ItemAttributes struct {
	Name         string
	Category     string
	Manufacturer string
	Pattern      string
	Description  string
}

// categoryNames maps category identifiers to the phrases buyers actually
// search with. Unknown categories fall back to underscore-to-space.
var categoryNames = map[string]string{
	"milk_glass":       "milk glass",
	"jadite":           "jadite",
	"carnival_glass":   "carnival glass",
	"depression_glass": "depression glass",
	"vaseline_glass":   "vaseline glass",
	"hobnail":          "hobnail glass",
	"slag_glass":       "slag glass",
	"opalescent":       "opalescent glass",
	"cut_glass":        "cut glass",
	"art_glass":        "art glass",
}

// CategoryDisplayName resolves a category identifier to its search phrase.
func CategoryDisplayName(category string) string {
	if name, ok := categoryNames[strings.ToLower(strings.TrimSpace(category))]; ok {
		return name
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), "_", " ")
}

// GenerateSearchTerms derives ranked marketplace query strings from item
// attributes. The category phrase is injected into every candidate so results
// are never generic; candidates are trimmed and de-duplicated preserving
// first-occurrence order, which doubles as relevance order.
func GenerateSearchTerms(attrs ItemAttributes) []string {
	name := strings.TrimSpace(attrs.Name)
	category := CategoryDisplayName(attrs.Category)
	manufacturer := strings.TrimSpace(attrs.Manufacturer)
	pattern := strings.TrimSpace(attrs.Pattern)

	candidates := []string{
		name + " " + category,
		category + " " + name,
		"vintage " + category + " " + name,
	}

	if manufacturer != "" {
		candidates = append(candidates,
			manufacturer+" "+category,
			manufacturer+" "+name+" "+category,
			category+" "+manufacturer,
			manufacturer+" "+name,
			name+" "+manufacturer,
		)
	}

	if pattern != "" {
		candidates = append(candidates,
			pattern+" "+category,
			category+" "+pattern,
		)
	}

	seen := make(map[string]struct{}, len(candidates))
	terms := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "" {
			continue
		}
		// Every term carries the category phrase so results are never generic.
		if category != "" && !strings.Contains(trimmed, category) {
			trimmed = trimmed + " " + category
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		terms = append(terms, trimmed)
	}

	return terms
}
