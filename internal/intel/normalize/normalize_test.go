// internal/intel/normalize/normalize_test.go
package normalize

import (
	"testing"

	"brand-intel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Format Detection Tests
// ==========================

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		declared models.SourceFormat
		expected models.SourceFormat
	}{
		{"declared wins", "dump.txt", models.FormatCSV, models.FormatCSV},
		{"csv extension", "export.csv", "", models.FormatCSV},
		{"json extension", "export.json", "", models.FormatJSON},
		{"jsonl extension", "export.jsonl", "", models.FormatJSONL},
		{"ndjson extension", "export.ndjson", "", models.FormatJSONL},
		{"uppercase extension", "EXPORT.CSV", "", models.FormatCSV},
		{"unknown", "export.xlsx", "", models.SourceFormat("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.file, tt.declared))
		})
	}
}

// ==========================
// JSON Tests
// ==========================

func TestNormalize_JSONList(t *testing.T) {
	data := `[
		{"caption": "Supreme dropped the best hoodie ever!!", "likes": 100, "comments": 10, "shares": 5, "platform": "instagram"},
		{"text": "mid drop tbh", "likesCount": "42"}
	]`

	result := Normalize(models.SourceFile{Name: "posts.json", Data: []byte(data)})

	require.False(t, result.Skipped())
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "Supreme dropped the best hoodie ever!!", first.Text)
	assert.Equal(t, 100, first.Likes)
	assert.Equal(t, 10, first.Comments)
	assert.Equal(t, 5, first.Shares)
	assert.Equal(t, "instagram", first.Platform)
	assert.Equal(t, "posts.json", first.Source)

	// Candidate-key fallback: likesCount as numeric string.
	assert.Equal(t, 42, result.Records[1].Likes)
}

func TestNormalize_JSONWrappedItems(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"items wrapper", `{"items": [{"text": "a"}, {"text": "b"}]}`},
		{"data wrapper", `{"data": [{"text": "a"}, {"text": "b"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(models.SourceFile{Name: "wrapped.json", Data: []byte(tt.data)})
			assert.Len(t, result.Records, 2)
		})
	}
}

func TestNormalize_JSONSingleObject(t *testing.T) {
	data := `{"caption": "solo post", "author": "crooksandcastles"}`

	result := Normalize(models.SourceFile{Name: "one.json", Data: []byte(data)})

	require.Len(t, result.Records, 1)
	assert.Equal(t, "solo post", result.Records[0].Text)
	assert.Equal(t, "crooksandcastles", result.Records[0].BrandHint)
}

func TestNormalize_JSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{{{`},
		{"scalar top level", `42`},
		{"string top level", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(models.SourceFile{Name: "bad.json", Data: []byte(tt.data)})
			assert.True(t, result.Skipped())
			assert.Empty(t, result.Records)
		})
	}
}

func TestNormalize_UndecodableBytes(t *testing.T) {
	result := Normalize(models.SourceFile{Name: "bin.json", Data: []byte{0xff, 0xfe, 0x00, 0x80}})

	assert.Equal(t, models.SkipUndecodable, result.Skip)
	assert.Empty(t, result.Records)
}

// ==========================
// JSONL Tests
// ==========================

func TestNormalize_JSONL(t *testing.T) {
	data := `{"text": "first post", "likes": 1}

{"text": "second post", "retweets": 7}
not valid json at all
{"text": "third post"}`

	result := Normalize(models.SourceFile{Name: "feed.jsonl", Data: []byte(data)})

	require.Len(t, result.Records, 3)
	assert.Equal(t, 1, result.LinesSkipped)
	assert.Equal(t, 7, result.Records[1].Shares) // retweets candidate
}

func TestNormalize_JSONLNonObjectLines(t *testing.T) {
	data := `{"text": "ok"}
[1, 2, 3]
"just a string"`

	result := Normalize(models.SourceFile{Name: "feed.jsonl", Data: []byte(data)})

	assert.Len(t, result.Records, 1)
	assert.Equal(t, 2, result.LinesSkipped)
}

// ==========================
// CSV Tests
// ==========================

func TestNormalize_CSV(t *testing.T) {
	data := `username,caption,like_count,comment_count,share_count,date
crooksfan,"loving the new crooks tee #streetwear",250,12,3,2024-06-01
hypewatch,"supreme resale prices are a scam",90,40,8,2024-06-02`

	result := Normalize(models.SourceFile{Name: "export.csv", Data: []byte(data)})

	require.False(t, result.Skipped())
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "crooksfan", first.BrandHint)
	assert.Equal(t, 250, first.Likes)
	assert.Equal(t, 12, first.Comments)
	assert.Equal(t, 3, first.Shares)
	assert.Equal(t, "2024-06-01", first.Date)
	assert.Equal(t, []string{"#streetwear"}, first.Hashtags)
}

func TestNormalize_CSVHeaderCaseInsensitive(t *testing.T) {
	data := `Username,Caption,Likes
fan1,nice drop,5`

	result := Normalize(models.SourceFile{Name: "export.csv", Data: []byte(data)})

	require.Len(t, result.Records, 1)
	assert.Equal(t, "fan1", result.Records[0].BrandHint)
	assert.Equal(t, 5, result.Records[0].Likes)
}

func TestNormalize_CSVTextConcatenation(t *testing.T) {
	data := `caption,description,likes
the caption,the description,5`

	result := Normalize(models.SourceFile{Name: "export.csv", Data: []byte(data)})

	require.Len(t, result.Records, 1)
	assert.Equal(t, "the caption the description", result.Records[0].Text)
}

func TestNormalize_CSVEmpty(t *testing.T) {
	result := Normalize(models.SourceFile{Name: "empty.csv", Data: []byte("")})

	assert.True(t, result.Skipped())
	assert.Empty(t, result.Records)
}

// ==========================
// Field Coercion Tests
// ==========================

func TestNormalize_NegativeAndGarbageCounts(t *testing.T) {
	data := `[{"text": "x", "likes": -5, "comments": "lots", "shares": "3.0"}]`

	result := Normalize(models.SourceFile{Name: "x.json", Data: []byte(data)})

	require.Len(t, result.Records, 1)
	record := result.Records[0]
	assert.Equal(t, 0, record.Likes)
	assert.Equal(t, 0, record.Comments)
	assert.Equal(t, 3, record.Shares)
}

func TestNormalize_MissingFieldsDefault(t *testing.T) {
	result := Normalize(models.SourceFile{Name: "x.json", Data: []byte(`[{}]`)})

	require.Len(t, result.Records, 1)
	record := result.Records[0]
	assert.Equal(t, "", record.Text)
	assert.Equal(t, "", record.BrandHint)
	assert.Equal(t, 0, record.Likes)
	assert.Empty(t, record.Hashtags)
}

func TestNormalize_TextConcatenation(t *testing.T) {
	data := `[{"caption": "the caption", "description": "the description"}]`

	result := Normalize(models.SourceFile{Name: "x.json", Data: []byte(data)})

	require.Len(t, result.Records, 1)
	assert.Equal(t, "the caption the description", result.Records[0].Text)
}

// ==========================
// Hashtag Tests
// ==========================

func TestNormalize_HashtagExtraction(t *testing.T) {
	data := `[{"text": "new drop #Fire #fire #StreetWear today", "hashtags": ["Hype", "#fire"]}]`

	result := Normalize(models.SourceFile{Name: "x.json", Data: []byte(data)})

	require.Len(t, result.Records, 1)
	assert.Equal(t, []string{"#fire", "#hype", "#streetwear"}, result.Records[0].Hashtags)
}

func TestNormalize_HashtagStringField(t *testing.T) {
	data := `[{"text": "plain", "tags": "summer,drops"}]`

	result := Normalize(models.SourceFile{Name: "x.json", Data: []byte(data)})

	require.Len(t, result.Records, 1)
	assert.Equal(t, []string{"#drops", "#summer"}, result.Records[0].Hashtags)
}
