package vectorstore

import (
	"strings"
	"testing"
)

func TestIsValidTableName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"Default collection", "research_memory", true},
		{"Underscore prefix", "_scratch", true},
		{"Digits allowed after first char", "memory2025", true},
		{"Single letter", "m", true},
		{"Max length", strings.Repeat("a", 63), true},
		{"Too long", strings.Repeat("a", 64), false},
		{"Leading digit", "2025memory", false},
		{"Hyphen", "research-memory", false},
		{"Whitespace", "research memory", false},
		{"Injection attempt", "research_memory; DROP TABLE research_queries", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidTableName(tt.input); got != tt.valid {
				t.Errorf("isValidTableName(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestNewPGVectorStoreRejectsBadCollection(t *testing.T) {
	if _, err := NewPGVectorStore(nil, "bad name!"); err == nil {
		t.Errorf("expected error for invalid collection name")
	}
	if _, err := NewPGVectorStore(nil, "research_memory"); err != nil {
		t.Errorf("valid collection name rejected: %v", err)
	}
}

func TestBuildMetadataQuery(t *testing.T) {
	vs := &PGVectorStore{}

	tests := []struct {
		name      string
		filter    map[string]interface{}
		wantQuery string
		wantArgs  int
		wantErr   bool
	}{
		{
			name:      "Empty filter matches everything",
			filter:    map[string]interface{}{},
			wantQuery: "TRUE",
		},
		{
			name:      "Origin equality",
			filter:    map[string]interface{}{"origin": "chatgpt"},
			wantQuery: "metadata @> $1",
			wantArgs:  1,
		},
		{
			name: "Origin and section",
			filter: map[string]interface{}{
				"$and": []interface{}{
					map[string]interface{}{"origin": "claude"},
					map[string]interface{}{"section": "recommendations"},
				},
			},
			wantQuery: "((metadata @> $1) AND (metadata @> $2))",
			wantArgs:  2,
		},
		{
			name: "Either platform",
			filter: map[string]interface{}{
				"$or": []interface{}{
					map[string]interface{}{"origin": "chatgpt"},
					map[string]interface{}{"origin": "gemini"},
				},
			},
			wantQuery: "((metadata @> $1) OR (metadata @> $2))",
			wantArgs:  2,
		},
		{
			name: "Everything except one query",
			filter: map[string]interface{}{
				"$not": map[string]interface{}{"query_id": "3f1c"},
			},
			wantQuery: "NOT (metadata @> $1)",
			wantArgs:  1,
		},
		{
			name: "Nested: one platform or two joint conditions",
			filter: map[string]interface{}{
				"$or": []interface{}{
					map[string]interface{}{"origin": "claude"},
					map[string]interface{}{
						"$and": []interface{}{
							map[string]interface{}{"origin": "gemini"},
							map[string]interface{}{"section": "findings"},
						},
					},
				},
			},
			wantQuery: "((metadata @> $1) OR (((metadata @> $2) AND (metadata @> $3))))",
			wantArgs:  3,
		},
		{
			name:    "$or must carry a list",
			filter:  map[string]interface{}{"$or": "chatgpt"},
			wantErr: true,
		},
		{
			name: "$and items must be objects",
			filter: map[string]interface{}{
				"$and": []interface{}{"origin"},
			},
			wantErr: true,
		},
		{
			name:    "$not must carry an object",
			filter:  map[string]interface{}{"$not": []interface{}{"origin"}},
			wantErr: true,
		},
		{
			name:      "Empty operator list is ignored",
			filter:    map[string]interface{}{"$and": []interface{}{}},
			wantQuery: "TRUE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args []interface{}
			gotQuery, err := vs.buildMetadataQuery(tt.filter, &args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildMetadataQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if gotQuery != tt.wantQuery {
				t.Errorf("buildMetadataQuery() query = %q, want %q", gotQuery, tt.wantQuery)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("buildMetadataQuery() args count = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}
