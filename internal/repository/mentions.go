// internal/repository/mentions.go
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"brand-intel/internal/common/errors"
	"brand-intel/internal/common/logger"
	"brand-intel/internal/models"
)

// MentionIndexer bulk-writes matched mentions into Elasticsearch so the
// dashboard can search raw brand chatter. It satisfies the pipeline's
// mention sink; callers treat failures as non-fatal.
type MentionIndexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewMentionIndexer(client *elasticsearch.Client, index string, log logger.Logger) *MentionIndexer {
	return &MentionIndexer{client: client, index: index, logger: log}
}

// IndexMentions writes all mentions of one run in a single bulk request.
func (m *MentionIndexer) IndexMentions(ctx context.Context, mentions []models.Mention) error {
	if len(mentions) == 0 {
		return nil
	}

	var body bytes.Buffer
	for _, mention := range mentions {
		meta := fmt.Sprintf(`{"index":{"_index":%q}}`, m.index)
		doc, err := json.Marshal(mention)
		if err != nil {
			return errors.NewInternalError(err)
		}
		body.WriteString(meta)
		body.WriteByte('\n')
		body.Write(doc)
		body.WriteByte('\n')
	}

	res, err := m.client.Bulk(
		bytes.NewReader(body.Bytes()),
		m.client.Bulk.WithContext(ctx),
		m.client.Bulk.WithIndex(m.index),
	)
	if err != nil {
		return errors.NewIndexWriteFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewIndexWriteFailedError(fmt.Errorf("bulk index returned %s", res.Status()))
	}

	// Partial failures are logged, not raised; indexing is best-effort.
	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
			Error  *struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error,omitempty"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err == nil && bulkResp.Errors {
		failed := 0
		for _, item := range bulkResp.Items {
			for _, op := range item {
				if op.Status >= 300 {
					failed++
				}
			}
		}
		m.logger.Warn("some mentions failed to index", map[string]interface{}{
			"index":  m.index,
			"total":  len(mentions),
			"failed": failed,
		})
	}

	return nil
}
