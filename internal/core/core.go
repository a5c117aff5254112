package core

import "time"

// ContentItem represents a single published video with its raw statistics.
// Items are immutable once fetched and scoped to one pipeline invocation.
type ContentItem struct {
	ID          string    `json:"id"`           // Unique identifier of the item (video ID)
	Title       string    `json:"title"`        // Title of the item
	PublishedAt time.Time `json:"published_at"` // Publish timestamp
	Views       int64     `json:"views"`        // View count (non-negative)
	Likes       int64     `json:"likes"`        // Like count (non-negative)
	Comments    int64     `json:"comments"`     // Comment count (non-negative)
	Duration    string    `json:"duration"`     // ISO-8601 duration as reported by the provider
}

// PerformanceRecord is the per-item view derived from a ContentItem:
// engagement rate as a percentage and the composite performance score.
type PerformanceRecord struct {
	ItemID           string    `json:"item_id"`           // ID of the source ContentItem
	Title            string    `json:"title"`             // Title carried over for reporting
	PublishedAt      time.Time `json:"published_at"`      // Publish timestamp carried over
	Views            int64     `json:"views"`             // View count
	Likes            int64     `json:"likes"`             // Like count
	Comments         int64     `json:"comments"`          // Comment count
	EngagementRate   float64   `json:"engagement_rate"`   // (likes+comments)/views*100, two decimals, 0 when views=0
	PerformanceScore float64   `json:"performance_score"` // Weighted capped blend of views/likes/comments/engagement
}

// UploadPattern is a histogram of publish timestamps by day-of-week and
// hour-of-day. Ties for the most popular bucket break toward the earliest index.
type UploadPattern struct {
	DayDistribution  [7]int  `json:"day_distribution"`  // Sunday..Saturday upload counts
	HourDistribution [24]int `json:"hour_distribution"` // 0..23 upload counts
	MostPopularDay   string  `json:"most_popular_day"`  // Weekday name of the busiest day bucket
	MostPopularHour  int     `json:"most_popular_hour"` // Hour of the busiest hour bucket
}

// MonthlyTrend aggregates items published in one (year, month) bucket.
type MonthlyTrend struct {
	Month             string  `json:"month"`              // Bucket key, "YYYY-MM"
	ItemCount         int     `json:"item_count"`         // Items published in this month
	TotalViews        int64   `json:"total_views"`        // Sum of views
	TotalLikes        int64   `json:"total_likes"`        // Sum of likes
	TotalComments     int64   `json:"total_comments"`     // Sum of comments
	AverageViews      int64   `json:"average_views"`      // Rounded mean views
	AverageEngagement float64 `json:"average_engagement"` // Mean engagement rate, two decimals
}

// TitlePattern tracks how a title keyword correlates with views.
type TitlePattern struct {
	Word         string `json:"word"`          // Lowercased keyword (length > 3)
	Frequency    int    `json:"frequency"`     // Number of titles containing the word
	AverageViews int64  `json:"average_views"` // Rounded mean views of those items
}

// UploadHour ranks an hour-of-day slot by the average views of items
// published in it.
type UploadHour struct {
	Hour         int   `json:"hour"`          // Hour of day, 0..23
	Uploads      int   `json:"uploads"`       // Items published in this hour
	AverageViews int64 `json:"average_views"` // Rounded mean views of those items
}

// ChannelMetrics is the channel-wide aggregate computed from a batch of
// ContentItems.
type ChannelMetrics struct {
	TotalItems            int                 `json:"total_items"`             // Number of items aggregated
	AverageViews          int64               `json:"average_views"`           // Rounded mean views
	AverageLikes          int64               `json:"average_likes"`           // Rounded mean likes
	AverageComments       int64               `json:"average_comments"`        // Rounded mean comments
	AverageEngagementRate float64             `json:"average_engagement_rate"` // Mean engagement rate, two decimals
	TopByViews            []PerformanceRecord `json:"top_by_views"`            // Top 5 by raw view count
	TopByEngagement       []PerformanceRecord `json:"top_by_engagement"`       // Top 5 by engagement rate
	TopByScore            []PerformanceRecord `json:"top_by_score"`            // Top 5 by composite score
	UploadPattern         UploadPattern       `json:"upload_pattern"`          // Day/hour publish histogram
	MonthlyTrends         []MonthlyTrend      `json:"monthly_trends"`          // Per-month totals, newest first
	TitlePatterns         []TitlePattern      `json:"title_patterns"`          // Top title keywords by average views
	OptimalUploadHours    []UploadHour        `json:"optimal_upload_hours"`    // Hours ranked by average views
	Records               []PerformanceRecord `json:"records"`                 // One record per input item, input order
}

// Comment represents a single audience comment on a content item.
type Comment struct {
	ID          string    `json:"id"`           // Unique identifier of the comment
	Text        string    `json:"text"`         // Display text
	Author      string    `json:"author"`       // Author display name
	Likes       int64     `json:"likes"`        // Like count
	PublishedAt time.Time `json:"published_at"` // Publish timestamp
	ItemID      string    `json:"item_id"`      // Owning content item
	ItemTitle   string    `json:"item_title"`   // Title of the owning item (can be empty)
}

// CommentCategory labels a comment within a single classification run.
type CommentCategory string

const (
	CategoryPopular      CommentCategory = "popular"
	CategoryConstructive CommentCategory = "constructive"
	CategoryImprovement  CommentCategory = "improvement"
	CategoryNeutral      CommentCategory = "neutral"
)

// ClassifiedComment is a Comment with the category assigned by one run.
// The classification is a property of the run, not of the Comment itself.
type ClassifiedComment struct {
	Comment
	Category CommentCategory `json:"category"`         // Assigned category
	Score    float64         `json:"score"`            // Relevance score used to rank constructive comments
	Reason   string          `json:"reason,omitempty"` // Model-supplied selection reason (generative runs only)
}

// CommentStats summarizes the full classified set, independent of category
// membership.
type CommentStats struct {
	TotalComments int     `json:"total_comments"` // Comments classified
	AverageLikes  float64 `json:"average_likes"`  // Mean likes, one decimal
	MaxLikes      int64   `json:"max_likes"`      // Highest like count in the set
	TotalLikes    int64   `json:"total_likes"`    // Sum of like counts
}

// AudienceSummary is the optional sentiment/topic summary produced by the
// generative classification strategy.
type AudienceSummary struct {
	OverallSentiment string   `json:"overall_sentiment"` // positive / negative / neutral
	KeyThemes        []string `json:"key_themes"`        // Recurring themes across comments
	AudienceInsights string   `json:"audience_insights"` // Free-text audience observation
}

// ClassificationResult is the per-run aggregate of a comment classification.
type ClassificationResult struct {
	RunID         string              `json:"run_id"`            // Unique identifier of this analysis run
	Strategy      string              `json:"strategy"`          // "keyword", "generative", or "keyword-fallback"
	TotalComments int                 `json:"total_comments"`    // Comments considered
	Popular       []ClassifiedComment `json:"popular"`           // Top comments by like count
	Constructive  []ClassifiedComment `json:"constructive"`      // Positive-value comments, ranked by score
	Improvement   []ClassifiedComment `json:"improvement"`       // Requests and critiques, ranked by likes
	Stats         CommentStats        `json:"stats"`             // Aggregate statistics over the whole set
	Summary       *AudienceSummary    `json:"summary,omitempty"` // Present for generative runs
}

// Idea is one normalized content recommendation.
type Idea struct {
	ID                string   `json:"id"`                 // Unique identifier of the idea
	Title             string   `json:"title"`              // Proposed title
	Concept           string   `json:"concept"`            // Main concept of the content
	Reasoning         string   `json:"reasoning"`          // Why this idea fits the channel
	TargetAudience    string   `json:"target_audience"`    // Intended audience
	Structure         []string `json:"structure"`          // Suggested content structure steps
	SuccessTips       []string `json:"success_tips"`       // Production tips
	RecommendedLength string   `json:"recommended_length"` // Suggested runtime, e.g. "10-15 minutes"
	Tags              []string `json:"tags"`               // Suggested tags
	ModelUsed         string   `json:"model_used"`         // Model that produced the idea (empty when degraded)
	Degraded          bool     `json:"degraded"`           // True when the idea was templated without a model call
}

// ChannelInfo carries the channel-level metadata embedded in idea prompts.
type ChannelInfo struct {
	ID          string `json:"id"`          // Channel identifier
	Title       string `json:"title"`       // Channel title
	Description string `json:"description"` // Channel description
	Subscribers int64  `json:"subscribers"` // Subscriber count
	TotalViews  int64  `json:"total_views"` // Lifetime view count
	VideoCount  int64  `json:"video_count"` // Published item count
}
