// internal/workers/intel/scan-brand-mentions/models.go
package scanbrandmentions

type Input struct {
	// Files are scanned inline when present; otherwise the configured
	// uploads directory is used.
	Files []InlineFile `json:"files,omitempty"`
}

type InlineFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
}

type Output struct {
	TotalRecords int            `json:"totalRecords"`
	Mentions     map[string]int `json:"mentions"`
	FilesScanned int            `json:"filesScanned"`
	FilesSkipped int            `json:"filesSkipped"`
	LinesSkipped int            `json:"linesSkipped"`
}
