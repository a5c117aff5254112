package comments

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"tubelens/internal/core"
)

// constructiveKeywords flags comments carrying positive value: praise,
// thanks, reported learning. Japanese and English sets are kept together
// since audiences mix both.
var constructiveKeywords = []string{
	"素晴らしい", "すごい", "感動", "勉強になる", "参考になる", "ありがとう",
	"助かる", "分かりやすい", "面白い", "良い", "いい", "最高", "神", "ナイス",
	"gj", "good", "great", "awesome", "amazing", "helpful", "useful", "thanks",
}

// improvementKeywords flags requests, critiques, and suggestions useful for
// future content.
var improvementKeywords = []string{
	"改善", "もっと", "できれば", "希望", "要望", "提案", "次回", "今度",
	"もう少し", "追加", "詳しく", "やってほしい", "お願い", "リクエスト",
	"音量", "画質", "編集", "bgm", "もしよろしければ", "もしよければ",
}

// KeywordLimits tunes the deterministic classifier.
type KeywordLimits struct {
	PopularLimit          int // Comments kept in the popular list
	CategoryLimit         int // Comments kept per sentiment category
	ConstructiveMinLength int // Minimum rune length for "constructive"
	ImprovementMinLength  int // Minimum rune length for "improvement"
}

// DefaultKeywordLimits matches the analyzer defaults: top 10 per list,
// constructive comments need more substance than improvement requests.
func DefaultKeywordLimits() KeywordLimits {
	return KeywordLimits{
		PopularLimit:          10,
		CategoryLimit:         10,
		ConstructiveMinLength: 20,
		ImprovementMinLength:  15,
	}
}

// KeywordClassifier is the deterministic strategy: fixed keyword sets and
// length thresholds, no external calls. The same input always yields the
// same categories.
type KeywordClassifier struct {
	limits KeywordLimits
}

// NewKeywordClassifier builds the keyword strategy with the given limits;
// zero-valued limits fall back to the defaults.
func NewKeywordClassifier(limits KeywordLimits) *KeywordClassifier {
	def := DefaultKeywordLimits()
	if limits.PopularLimit <= 0 {
		limits.PopularLimit = def.PopularLimit
	}
	if limits.CategoryLimit <= 0 {
		limits.CategoryLimit = def.CategoryLimit
	}
	if limits.ConstructiveMinLength <= 0 {
		limits.ConstructiveMinLength = def.ConstructiveMinLength
	}
	if limits.ImprovementMinLength <= 0 {
		limits.ImprovementMinLength = def.ImprovementMinLength
	}
	return &KeywordClassifier{limits: limits}
}

// Classify assigns categories with the keyword rules. A comment can appear
// in both "popular" and one sentiment category; the popular list ignores
// sentiment entirely.
func (k *KeywordClassifier) Classify(_ context.Context, batch []core.Comment) (*core.ClassificationResult, error) {
	result := &core.ClassificationResult{
		RunID:         uuid.NewString(),
		Strategy:      StrategyKeyword,
		TotalComments: len(batch),
		Popular:       k.popular(batch),
		Constructive:  k.constructive(batch),
		Improvement:   k.improvement(batch),
		Stats:         Stats(batch),
	}
	return result, nil
}

// Score computes the relevance score used to rank constructive comments:
// like count, plus a small bonus for substantial-but-readable length, plus
// three points per matched positive keyword.
func Score(c core.Comment) float64 {
	textLower := strings.ToLower(c.Text)
	score := float64(c.Likes)

	length := utf8.RuneCountInString(c.Text)
	if length > 50 && length < 500 {
		score += 2
	}

	for _, keyword := range constructiveKeywords {
		if strings.Contains(textLower, keyword) {
			score += 3
		}
	}
	return score
}

func (k *KeywordClassifier) popular(batch []core.Comment) []core.ClassifiedComment {
	ranked := make([]core.Comment, len(batch))
	copy(ranked, batch)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Likes > ranked[j].Likes })
	if len(ranked) > k.limits.PopularLimit {
		ranked = ranked[:k.limits.PopularLimit]
	}
	return classified(ranked, core.CategoryPopular)
}

func (k *KeywordClassifier) constructive(batch []core.Comment) []core.ClassifiedComment {
	var matched []core.Comment
	for _, c := range batch {
		if containsAny(c.Text, constructiveKeywords) && utf8.RuneCountInString(c.Text) > k.limits.ConstructiveMinLength {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return Score(matched[i]) > Score(matched[j]) })
	if len(matched) > k.limits.CategoryLimit {
		matched = matched[:k.limits.CategoryLimit]
	}
	return classified(matched, core.CategoryConstructive)
}

func (k *KeywordClassifier) improvement(batch []core.Comment) []core.ClassifiedComment {
	var matched []core.Comment
	for _, c := range batch {
		if containsAny(c.Text, improvementKeywords) && utf8.RuneCountInString(c.Text) > k.limits.ImprovementMinLength {
			matched = append(matched, c)
		}
	}
	// Improvement requests rank purely by like count.
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Likes > matched[j].Likes })
	if len(matched) > k.limits.CategoryLimit {
		matched = matched[:k.limits.CategoryLimit]
	}
	return classified(matched, core.CategoryImprovement)
}

func containsAny(text string, keywords []string) bool {
	textLower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			return true
		}
	}
	return false
}

func classified(batch []core.Comment, category core.CommentCategory) []core.ClassifiedComment {
	out := make([]core.ClassifiedComment, len(batch))
	for i, c := range batch {
		out[i] = core.ClassifiedComment{
			Comment:  c,
			Category: category,
			Score:    Score(c),
		}
	}
	return out
}
