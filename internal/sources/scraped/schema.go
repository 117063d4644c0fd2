package scraped

import "github.com/abhisek/learnpath/internal/sources"

// bundleSchema checks the top-level bundle fields only; units, lessons and
// exercises are validated one by one while mapping.
var bundleSchema = &sources.Schema{
	Name: "scraped-bundle",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"id", "subject", "units"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "minLength": 1},
			"subject":     map[string]any{"type": "string", "minLength": 1},
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"grades": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"units": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
			"scrapedAt": map[string]any{"type": "string"},
		},
	},
}
