package metrics

import (
	"math"
	"sort"
	"strings"
	"time"

	"tubelens/internal/core"
)

// topPerformerCount is the size of each ranked top-performer list.
const topPerformerCount = 5

// titlePatternCount bounds the returned title keyword list.
const titlePatternCount = 10

// EngagementRate computes (likes + comments) / views as a percentage,
// rounded to two decimals. A zero view count yields exactly 0.
func EngagementRate(views, likes, comments int64) float64 {
	if views == 0 {
		return 0
	}
	rate := float64(likes+comments) / float64(views) * 100
	return round2(rate)
}

// PerformanceScore blends four capped sub-scores. Each factor is capped so
// a single viral outlier cannot dominate the ranking; the score is bounded
// above by 10.
func PerformanceScore(views, likes, comments int64, engagementRate float64) float64 {
	viewScore := math.Min(float64(views)/1_000_000, 10) * 0.3
	likeScore := math.Min(float64(likes)/100_000, 10) * 0.3
	commentScore := math.Min(float64(comments)/10_000, 10) * 0.2
	engagementScore := math.Min(engagementRate, 10) * 0.2
	return viewScore + likeScore + commentScore + engagementScore
}

// Record derives the PerformanceRecord for a single item.
func Record(item core.ContentItem) core.PerformanceRecord {
	rate := EngagementRate(item.Views, item.Likes, item.Comments)
	return core.PerformanceRecord{
		ItemID:           item.ID,
		Title:            item.Title,
		PublishedAt:      item.PublishedAt,
		Views:            item.Views,
		Likes:            item.Likes,
		Comments:         item.Comments,
		EngagementRate:   rate,
		PerformanceScore: PerformanceScore(item.Views, item.Likes, item.Comments, rate),
	}
}

// Aggregate converts a batch of ContentItems into channel-wide metrics.
// It fails with core.EmptyInputError when items is empty so averages never
// divide by zero.
func Aggregate(items []core.ContentItem) (*core.ChannelMetrics, error) {
	if len(items) == 0 {
		return nil, &core.EmptyInputError{Op: "metrics.Aggregate"}
	}

	records := make([]core.PerformanceRecord, len(items))
	var totalViews, totalLikes, totalComments int64
	var totalEngagement float64
	for i, item := range items {
		records[i] = Record(item)
		totalViews += item.Views
		totalLikes += item.Likes
		totalComments += item.Comments
		totalEngagement += records[i].EngagementRate
	}

	n := float64(len(records))
	m := &core.ChannelMetrics{
		TotalItems:            len(records),
		AverageViews:          int64(math.Round(float64(totalViews) / n)),
		AverageLikes:          int64(math.Round(float64(totalLikes) / n)),
		AverageComments:       int64(math.Round(float64(totalComments) / n)),
		AverageEngagementRate: round2(totalEngagement / n),
		TopByViews:            topBy(records, func(r core.PerformanceRecord) float64 { return float64(r.Views) }),
		TopByEngagement:       topBy(records, func(r core.PerformanceRecord) float64 { return r.EngagementRate }),
		TopByScore:            topBy(records, func(r core.PerformanceRecord) float64 { return r.PerformanceScore }),
		UploadPattern:         uploadPattern(records),
		MonthlyTrends:         monthlyTrends(records),
		TitlePatterns:         titlePatterns(records),
		OptimalUploadHours:    optimalUploadHours(records),
		Records:               records,
	}
	return m, nil
}

// topBy returns the top performers under the given ranking key. The sort is
// stable so equal keys keep their original input order.
func topBy(records []core.PerformanceRecord, key func(core.PerformanceRecord) float64) []core.PerformanceRecord {
	ranked := make([]core.PerformanceRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})
	if len(ranked) > topPerformerCount {
		ranked = ranked[:topPerformerCount]
	}
	return ranked
}

// uploadPattern buckets publish timestamps by day-of-week and hour-of-day.
// The most popular bucket breaks ties toward the earliest index.
func uploadPattern(records []core.PerformanceRecord) core.UploadPattern {
	var p core.UploadPattern
	for _, r := range records {
		p.DayDistribution[int(r.PublishedAt.Weekday())]++
		p.HourDistribution[r.PublishedAt.Hour()]++
	}

	bestDay := 0
	for d := 1; d < len(p.DayDistribution); d++ {
		if p.DayDistribution[d] > p.DayDistribution[bestDay] {
			bestDay = d
		}
	}
	p.MostPopularDay = time.Weekday(bestDay).String()

	bestHour := 0
	for h := 1; h < len(p.HourDistribution); h++ {
		if p.HourDistribution[h] > p.HourDistribution[bestHour] {
			bestHour = h
		}
	}
	p.MostPopularHour = bestHour
	return p
}

// monthlyTrends groups records by (year, month) of the publish date and
// returns per-bucket totals and averages, newest bucket first.
func monthlyTrends(records []core.PerformanceRecord) []core.MonthlyTrend {
	buckets := make(map[string]*core.MonthlyTrend)
	engagement := make(map[string]float64)
	for _, r := range records {
		key := r.PublishedAt.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &core.MonthlyTrend{Month: key}
			buckets[key] = b
		}
		b.ItemCount++
		b.TotalViews += r.Views
		b.TotalLikes += r.Likes
		b.TotalComments += r.Comments
		engagement[key] += r.EngagementRate
	}

	trends := make([]core.MonthlyTrend, 0, len(buckets))
	for key, b := range buckets {
		b.AverageViews = int64(math.Round(float64(b.TotalViews) / float64(b.ItemCount)))
		b.AverageEngagement = round2(engagement[key] / float64(b.ItemCount))
		trends = append(trends, *b)
	}
	sort.Slice(trends, func(i, j int) bool {
		return trends[i].Month > trends[j].Month
	})
	return trends
}

// titlePatterns aggregates title keywords longer than three characters and
// ranks them by the average views of the titles containing them.
func titlePatterns(records []core.PerformanceRecord) []core.TitlePattern {
	type wordStat struct {
		count      int
		totalViews int64
	}
	words := make(map[string]*wordStat)
	for _, r := range records {
		for _, word := range strings.Fields(strings.ToLower(r.Title)) {
			if len(word) <= 3 {
				continue
			}
			s, ok := words[word]
			if !ok {
				s = &wordStat{}
				words[word] = s
			}
			s.count++
			s.totalViews += r.Views
		}
	}

	patterns := make([]core.TitlePattern, 0, len(words))
	for word, s := range words {
		patterns = append(patterns, core.TitlePattern{
			Word:         word,
			Frequency:    s.count,
			AverageViews: int64(math.Round(float64(s.totalViews) / float64(s.count))),
		})
	}
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].AverageViews != patterns[j].AverageViews {
			return patterns[i].AverageViews > patterns[j].AverageViews
		}
		return patterns[i].Word < patterns[j].Word
	})
	if len(patterns) > titlePatternCount {
		patterns = patterns[:titlePatternCount]
	}
	return patterns
}

// optimalUploadHours ranks hour-of-day slots by average views.
func optimalUploadHours(records []core.PerformanceRecord) []core.UploadHour {
	type hourStat struct {
		uploads    int
		totalViews int64
	}
	var stats [24]hourStat
	for _, r := range records {
		h := r.PublishedAt.Hour()
		stats[h].uploads++
		stats[h].totalViews += r.Views
	}

	var hours []core.UploadHour
	for h, s := range stats {
		if s.uploads == 0 {
			continue
		}
		hours = append(hours, core.UploadHour{
			Hour:         h,
			Uploads:      s.uploads,
			AverageViews: int64(math.Round(float64(s.totalViews) / float64(s.uploads))),
		})
	}
	sort.SliceStable(hours, func(i, j int) bool {
		return hours[i].AverageViews > hours[j].AverageViews
	})
	return hours
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
