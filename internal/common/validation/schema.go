// internal/common/validation/schema.go
package validation

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"brand-intel/internal/common/errors"
	"brand-intel/internal/models"
)

// rosterSchema constrains external roster documents: every brand needs a
// non-empty name and at least one keyword, and exactly one subject flag is
// enforced after schema validation.
const rosterSchema = `{
	"type": "object",
	"required": ["brands"],
	"properties": {
		"brands": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "keywords"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"keywords": {
						"type": "array",
						"minItems": 1,
						"items": {"type": "string", "minLength": 1}
					},
					"subject": {"type": "boolean"}
				}
			}
		}
	}
}`

type rosterDocument struct {
	Brands []struct {
		Name     string   `json:"name"`
		Keywords []string `json:"keywords"`
		Subject  bool     `json:"subject"`
	} `json:"brands"`
}

// ValidateRosterDocument validates a roster JSON document and returns the
// parsed brand definitions, subject brand first.
func ValidateRosterDocument(data []byte) ([]models.BrandDefinition, error) {
	schemaLoader := gojsonschema.NewStringLoader(rosterSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errors.NewRosterInvalidError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, errors.NewRosterInvalidError(strings.Join(details, "; "))
	}

	var doc rosterDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewRosterInvalidError(err.Error())
	}

	subjects := 0
	roster := make([]models.BrandDefinition, 0, len(doc.Brands))
	for _, b := range doc.Brands {
		if b.Subject {
			subjects++
		}
		roster = append(roster, models.BrandDefinition{
			Name:     b.Name,
			Keywords: b.Keywords,
			Subject:  b.Subject,
		})
	}
	if subjects != 1 {
		return nil, errors.NewRosterInvalidError("roster must flag exactly one subject brand")
	}

	// Subject first so downstream tie-breaks stay stable.
	for i, b := range roster {
		if b.Subject && i != 0 {
			subject := roster[i]
			copy(roster[1:i+1], roster[0:i])
			roster[0] = subject
			break
		}
	}

	return roster, nil
}
