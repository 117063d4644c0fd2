package roster

import "github.com/abhisek/learnpath/internal/sources"

// syllabusSchema guards only the top-level object. A missing or null course
// passes here and is reported as not found by the adapter. Nested components
// and resources are checked while mapping so a broken one can be skipped.
var syllabusSchema = &sources.Schema{
	Name: "roster-syllabus",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"course": map[string]any{
				"type":     []any{"object", "null"},
				"required": []any{"sourcedId", "title"},
				"properties": map[string]any{
					"sourcedId": map[string]any{"type": "string", "minLength": 1},
					"title":     map[string]any{"type": "string", "minLength": 1},
					"grades": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"subjects": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"components": map[string]any{"type": "array"},
				},
			},
		},
	},
}
