// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRosterDocument_Valid(t *testing.T) {
	doc := []byte(`{
		"brands": [
			{"name": "Supreme", "keywords": ["supreme"]},
			{"name": "Crooks & Castles", "keywords": ["crooks", "castles"], "subject": true},
			{"name": "Stussy", "keywords": ["stussy"]}
		]
	}`)

	roster, err := ValidateRosterDocument(doc)
	require.NoError(t, err)
	require.Len(t, roster, 3)

	// Subject brand is moved to the front, everyone else keeps order.
	assert.Equal(t, "Crooks & Castles", roster[0].Name)
	assert.True(t, roster[0].Subject)
	assert.Equal(t, "Supreme", roster[1].Name)
	assert.Equal(t, "Stussy", roster[2].Name)
}

func TestValidateRosterDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{{`},
		{"missing brands", `{}`},
		{"empty brands", `{"brands": []}`},
		{"brand without name", `{"brands": [{"keywords": ["x"], "subject": true}]}`},
		{"brand without keywords", `{"brands": [{"name": "X", "subject": true}]}`},
		{"empty keyword list", `{"brands": [{"name": "X", "keywords": [], "subject": true}]}`},
		{"no subject", `{"brands": [{"name": "X", "keywords": ["x"]}]}`},
		{"two subjects", `{"brands": [
			{"name": "X", "keywords": ["x"], "subject": true},
			{"name": "Y", "keywords": ["y"], "subject": true}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRosterDocument([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "ROSTER_INVALID")
		})
	}
}
