// internal/intel/normalize/fields.go
package normalize

// Candidate source keys per canonical field, evaluated in priority order.
// Upload schemas vary per export tool, so each canonical field carries an
// explicit ordered list instead of ad hoc conditionals.
var (
	brandHintKeys = []string{"brand", "brand_name", "account", "account_name", "username", "author", "page_name"}
	platformKeys  = []string{"platform", "source", "network"}
	dateKeys      = []string{"date", "created_at", "timestamp", "created_time", "taken_at"}
	likesKeys     = []string{"likes", "likesCount", "like_count", "favorite_count", "reactions"}
	commentsKeys  = []string{"comments", "commentsCount", "comment_count", "replies"}
	sharesKeys    = []string{"shares", "sharesCount", "share_count", "retweets", "reposts"}
	textKeys      = []string{"text", "caption", "description", "content", "message", "title"}
	urlKeys       = []string{"url", "link", "permalink", "post_url"}
	hashtagKeys   = []string{"hashtags", "tags"}
)
