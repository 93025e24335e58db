// internal/intel/brand/roster.go
package brand

import (
	"strings"

	"brand-intel/internal/models"
)

// DefaultRoster returns the built-in tracked-brand roster: the subject brand
// followed by the named competitors. Roster order is significant — it is the
// tie-breaker for every ranked insight list.
func DefaultRoster() []models.BrandDefinition {
	return []models.BrandDefinition{
		{Name: "Crooks & Castles", Keywords: []string{"crooks & castles", "crooks and castles", "crooks", "crookscastles"}, Subject: true},
		{Name: "Supreme", Keywords: []string{"supreme", "supremenewyork"}},
		{Name: "Stussy", Keywords: []string{"stussy", "stüssy"}},
		{Name: "BAPE", Keywords: []string{"bape", "a bathing ape", "bathing ape"}},
		{Name: "Palace", Keywords: []string{"palace", "palaceskateboards"}},
		{Name: "Kith", Keywords: []string{"kith"}},
		{Name: "Off-White", Keywords: []string{"off-white", "off white", "offwhite"}},
		{Name: "Fear of God", Keywords: []string{"fear of god", "fearofgod", "essentials fear"}},
	}
}

// Subject returns the subject brand of a roster, or the first entry when none
// is flagged.
func Subject(roster []models.BrandDefinition) models.BrandDefinition {
	for _, b := range roster {
		if b.Subject {
			return b
		}
	}
	return roster[0]
}

// Matcher resolves which roster brands a record mentions. Matching is plain
// case-insensitive substring containment so results stay auditable.
type Matcher struct {
	roster   []models.BrandDefinition
	keywords [][]string // lowercased, parallel to roster
}

// NewMatcher precompiles the keyword sets for a roster. The roster is
// read-only after this point and the matcher is safe for concurrent use.
func NewMatcher(roster []models.BrandDefinition) *Matcher {
	keywords := make([][]string, len(roster))
	for i, b := range roster {
		lowered := make([]string, 0, len(b.Keywords))
		for _, kw := range b.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				lowered = append(lowered, kw)
			}
		}
		keywords[i] = lowered
	}
	return &Matcher{roster: roster, keywords: keywords}
}

// Roster returns the matcher's brand roster in insertion order.
func (m *Matcher) Roster() []models.BrandDefinition {
	return m.roster
}

// Match returns the roster indices of every brand mentioned in the record's
// combined text, in roster order. A record may match zero, one or several
// brands; each match counts independently downstream.
func (m *Matcher) Match(record *models.PostRecord) []int {
	text := strings.ToLower(record.CombinedText())
	if text == "" {
		return nil
	}

	var matched []int
	for i, kws := range m.keywords {
		for _, kw := range kws {
			if strings.Contains(text, kw) {
				matched = append(matched, i)
				break
			}
		}
	}
	return matched
}
