// internal/workers/intel/analyze-sentiment/models.go
package analyzesentiment

type Input struct {
	Text  string   `json:"text,omitempty"`
	Texts []string `json:"texts,omitempty"`
}

type Output struct {
	Score   float64  `json:"score"`
	Label   string   `json:"label"`
	Results []Result `json:"results,omitempty"`
}

type Result struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Label string  `json:"label"`
}
