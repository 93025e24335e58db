// internal/intel/normalize/normalize.go
package normalize

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"brand-intel/internal/models"

	"github.com/tidwall/gjson"
)

var hashtagPattern = regexp.MustCompile(`#[A-Za-z0-9_]+`)

// FileResult is the outcome of normalizing one uploaded file. A skipped file
// carries its reason instead of records; skipped lines within an otherwise
// good file are only counted. Nothing here is fatal to a pipeline run.
type FileResult struct {
	File         string
	Records      []models.PostRecord
	LinesSkipped int
	Skip         models.SkipReason
}

// Skipped reports whether the whole file produced no records for a reason.
func (r FileResult) Skipped() bool {
	return r.Skip != ""
}

// DetectFormat resolves a file's format from its declared value, falling
// back to the file extension.
func DetectFormat(name string, declared models.SourceFormat) models.SourceFormat {
	switch declared {
	case models.FormatCSV, models.FormatJSON, models.FormatJSONL:
		return declared
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return models.FormatCSV
	case ".jsonl", ".ndjson":
		return models.FormatJSONL
	case ".json":
		return models.FormatJSON
	}
	return ""
}

// Normalize converts one uploaded file into canonical post records.
// Input structure is untrusted: unknown fields default to empty/zero and
// malformed content degrades to skips, never errors.
func Normalize(file models.SourceFile) FileResult {
	result := FileResult{File: file.Name}

	if !utf8.Valid(file.Data) {
		result.Skip = models.SkipUndecodable
		return result
	}

	switch DetectFormat(file.Name, file.Format) {
	case models.FormatCSV:
		return normalizeCSV(file)
	case models.FormatJSONL:
		return normalizeJSONL(file)
	case models.FormatJSON:
		return normalizeJSON(file)
	default:
		result.Skip = models.SkipUnknownFormat
		return result
	}
}

func normalizeJSON(file models.SourceFile) FileResult {
	result := FileResult{File: file.Name}

	if !gjson.ValidBytes(file.Data) {
		result.Skip = models.SkipBadStructure
		return result
	}

	parsed := gjson.ParseBytes(file.Data)
	switch {
	case parsed.IsArray():
		for _, item := range parsed.Array() {
			if item.IsObject() {
				result.Records = append(result.Records, recordFromJSON(item, file.Name))
			} else {
				result.LinesSkipped++
			}
		}
	case parsed.IsObject():
		// Wrapped exports put the rows under "items" or "data".
		for _, wrapper := range []string{"items", "data"} {
			if list := parsed.Get(wrapper); list.IsArray() {
				for _, item := range list.Array() {
					if item.IsObject() {
						result.Records = append(result.Records, recordFromJSON(item, file.Name))
					} else {
						result.LinesSkipped++
					}
				}
				return result
			}
		}
		result.Records = append(result.Records, recordFromJSON(parsed, file.Name))
	default:
		result.Skip = models.SkipBadStructure
	}

	return result
}

func normalizeJSONL(file models.SourceFile) FileResult {
	result := FileResult{File: file.Name}

	for _, line := range bytes.Split(file.Data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			result.LinesSkipped++
			continue
		}
		parsed := gjson.ParseBytes(line)
		if !parsed.IsObject() {
			result.LinesSkipped++
			continue
		}
		result.Records = append(result.Records, recordFromJSON(parsed, file.Name))
	}

	return result
}

func normalizeCSV(file models.SourceFile) FileResult {
	result := FileResult{File: file.Name}

	reader := csv.NewReader(bytes.NewReader(file.Data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		result.Skip = models.SkipBadStructure
		return result
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.LinesSkipped++
			continue
		}
		result.Records = append(result.Records, recordFromRow(index, row, file.Name))
	}

	return result
}

// ==========================
// Field Extraction
// ==========================

func recordFromJSON(obj gjson.Result, source string) models.PostRecord {
	record := models.PostRecord{
		BrandHint: firstString(obj, brandHintKeys),
		Platform:  firstString(obj, platformKeys),
		Date:      firstString(obj, dateKeys),
		Likes:     firstCount(obj, likesKeys),
		Comments:  firstCount(obj, commentsKeys),
		Shares:    firstCount(obj, sharesKeys),
		Text:      joinedText(obj),
		URL:       firstString(obj, urlKeys),
		Source:    source,
	}
	record.Hashtags = extractHashtags(record.Text, hashtagValues(obj))
	return record
}

func recordFromRow(index map[string]int, row []string, source string) models.PostRecord {
	cell := func(candidates []string) string {
		for _, key := range candidates {
			if i, ok := index[strings.ToLower(key)]; ok && i < len(row) {
				if v := strings.TrimSpace(row[i]); v != "" {
					return v
				}
			}
		}
		return ""
	}

	// Captions and descriptions both survive, same as the JSON path.
	var textParts []string
	for _, key := range textKeys {
		if i, ok := index[strings.ToLower(key)]; ok && i < len(row) {
			if v := strings.TrimSpace(row[i]); v != "" {
				textParts = append(textParts, v)
			}
		}
	}
	text := strings.Join(textParts, " ")

	record := models.PostRecord{
		BrandHint: cell(brandHintKeys),
		Platform:  cell(platformKeys),
		Date:      cell(dateKeys),
		Likes:     coerceCount(cell(likesKeys)),
		Comments:  coerceCount(cell(commentsKeys)),
		Shares:    coerceCount(cell(sharesKeys)),
		Text:      text,
		URL:       cell(urlKeys),
		Source:    source,
	}
	record.Hashtags = extractHashtags(text, []string{cell(hashtagKeys)})
	return record
}

func firstString(obj gjson.Result, candidates []string) string {
	for _, key := range candidates {
		v := obj.Get(key)
		if v.Exists() && v.Type != gjson.Null {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

// joinedText concatenates every present text candidate so captions and
// descriptions both survive normalization.
func joinedText(obj gjson.Result) string {
	var parts []string
	for _, key := range textKeys {
		v := obj.Get(key)
		if v.Exists() && v.Type == gjson.String {
			if s := strings.TrimSpace(v.String()); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, " ")
}

func firstCount(obj gjson.Result, candidates []string) int {
	for _, key := range candidates {
		v := obj.Get(key)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		switch v.Type {
		case gjson.Number:
			return clampCount(int(v.Int()))
		case gjson.String:
			if n := coerceCount(v.String()); n > 0 {
				return n
			}
		}
	}
	return 0
}

// coerceCount parses a count from a string, tolerating float formatting.
// Garbage and negatives coerce to 0.
func coerceCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return clampCount(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return clampCount(int(f))
	}
	return 0
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// hashtagValues pulls a dedicated hashtag/tag field as strings, accepting
// either a list or a single delimited string.
func hashtagValues(obj gjson.Result) []string {
	for _, key := range hashtagKeys {
		v := obj.Get(key)
		if !v.Exists() {
			continue
		}
		if v.IsArray() {
			var out []string
			for _, item := range v.Array() {
				out = append(out, item.String())
			}
			return out
		}
		if v.Type == gjson.String {
			return []string{v.String()}
		}
	}
	return nil
}

// extractHashtags scans the post text plus any dedicated tag values for
// #tokens, lowercased and deduplicated. Sorted for stable output.
func extractHashtags(text string, extra []string) []string {
	seen := make(map[string]bool)

	scan := func(s string) {
		for _, tag := range hashtagPattern.FindAllString(s, -1) {
			seen[strings.ToLower(tag)] = true
		}
	}

	scan(text)
	for _, v := range extra {
		scan(v)
		// Tag fields often omit the # prefix and may be comma-delimited.
		words := strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		for _, word := range words {
			word = strings.ToLower(word)
			if !strings.HasPrefix(word, "#") && isTagWord(word) {
				seen["#"+word] = true
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func isTagWord(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '_' {
			return false
		}
	}
	return s != ""
}
