// internal/workers/intel/generate-competitive-report/models.go
package generatecompetitivereport

import "brand-intel/internal/models"

type Input struct {
	RequestID string `json:"requestId,omitempty"`
}

type Output struct {
	Status string                    `json:"status"`
	Report *models.CompetitiveReport `json:"report"`
}
