// internal/models/mention.go
package models

// Mention is one matched (brand, record) pair, shaped for the search index.
type Mention struct {
	RunID     string  `json:"run_id"`
	Brand     string  `json:"brand"`
	Excerpt   string  `json:"excerpt"`
	Sentiment float64 `json:"sentiment"`
	Label     string  `json:"label"`
	Platform  string  `json:"platform,omitempty"`
	Date      string  `json:"date,omitempty"`
	Source    string  `json:"source"`
}
