// internal/models/record.go
package models

// SourceFormat identifies how an uploaded export file is encoded.
type SourceFormat string

const (
	FormatCSV   SourceFormat = "csv"
	FormatJSON  SourceFormat = "json"
	FormatJSONL SourceFormat = "jsonl"
)

// SourceFile is one uploaded social-media export, read once per pipeline run.
type SourceFile struct {
	Name   string       `json:"name"`
	Data   []byte       `json:"-"`
	Format SourceFormat `json:"format"`
}

// PostRecord is the canonical post shape every source schema normalizes into.
// Numeric fields are never negative; missing source fields default to
// empty/zero instead of failing the record.
type PostRecord struct {
	BrandHint string   `json:"brand_hint"`
	Platform  string   `json:"platform"`
	Date      string   `json:"date"`
	Likes     int      `json:"likes"`
	Comments  int      `json:"comments"`
	Shares    int      `json:"shares"`
	Text      string   `json:"text"`
	URL       string   `json:"url"`
	Hashtags  []string `json:"hashtags"`
	Source    string   `json:"source"`
}

// CombinedText returns the text used for brand matching: the post body plus
// the raw author/account hint.
func (r *PostRecord) CombinedText() string {
	if r.BrandHint == "" {
		return r.Text
	}
	return r.Text + " " + r.BrandHint
}

// SkipReason explains why a file or line produced no record.
type SkipReason string

const (
	SkipUndecodable   SkipReason = "undecodable_bytes"
	SkipBadStructure  SkipReason = "unsupported_structure"
	SkipBadLine       SkipReason = "unparsable_line"
	SkipBadRow        SkipReason = "unparsable_row"
	SkipUnknownFormat SkipReason = "unknown_format"
)
