// Package analyzer is the service facade tying the provider, the metrics
// aggregator, the comment classifier, and the idea pipeline together. All
// outward results travel in a uniform envelope.
package analyzer

import (
	"context"
	"errors"
	"time"

	"tubelens/internal/comments"
	"tubelens/internal/core"
	"tubelens/internal/ideas"
	"tubelens/internal/logger"
	"tubelens/internal/metrics"
)

// ContentProvider is what the analyzer needs from a content platform.
type ContentProvider interface {
	ChannelInfo(ctx context.Context, ref string) (*core.ChannelInfo, error)
	ListItems(ctx context.Context, channelID string) ([]core.ContentItem, error)
	ListComments(ctx context.Context, itemID string) ([]core.Comment, error)
	ChannelComments(ctx context.Context, items []core.ContentItem) ([]core.Comment, error)
}

// IdeaGenerator is the slice of the idea pipeline the analyzer consumes.
type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, req ideas.Request) ([]core.Idea, error)
}

// Envelope is the uniform response wrapper. Exactly one of Data and Error
// is populated.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps an error, surfacing the wrapped cause in Details when the
// top-level message differs from it.
func Fail(err error) Envelope {
	env := Envelope{Error: err.Error()}
	if cause := errors.Unwrap(err); cause != nil && cause.Error() != env.Error {
		env.Details = cause.Error()
	}
	return env
}

// Analysis is one full channel analysis. Classification is nil when the
// comment branch failed and the run degraded to metrics only.
type Analysis struct {
	Channel        *core.ChannelInfo          `json:"channel,omitempty"`
	Metrics        *core.ChannelMetrics       `json:"metrics"`
	Classification *core.ClassificationResult `json:"classification,omitempty"`
	Degraded       bool                       `json:"degraded,omitempty"`
}

// Service orchestrates one analysis run end to end.
type Service struct {
	provider     ContentProvider
	classifier   comments.Classifier
	ideas        IdeaGenerator
	fetchTimeout time.Duration
}

// NewService wires the analyzer's dependencies.
func NewService(provider ContentProvider, classifier comments.Classifier, gen IdeaGenerator, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &Service{provider: provider, classifier: classifier, ideas: gen, fetchTimeout: fetchTimeout}
}

// AnalyzeMetrics fetches the channel's items and aggregates them.
func (s *Service) AnalyzeMetrics(ctx context.Context, ref string) (*core.ChannelMetrics, error) {
	_, items, err := s.fetchItems(ctx, ref)
	if err != nil {
		return nil, err
	}
	return metrics.Aggregate(items)
}

// AnalyzeComments fetches comments across the channel's recent items and
// runs the configured classification strategy.
func (s *Service) AnalyzeComments(ctx context.Context, ref string) (*core.ClassificationResult, error) {
	_, items, err := s.fetchItems(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.classifyComments(ctx, func(ctx context.Context) ([]core.Comment, error) {
		return s.provider.ChannelComments(ctx, items)
	})
}

// AnalyzeItemComments classifies the comments of one item instead of the
// whole channel.
func (s *Service) AnalyzeItemComments(ctx context.Context, itemID string) (*core.ClassificationResult, error) {
	return s.classifyComments(ctx, func(ctx context.Context) ([]core.Comment, error) {
		return s.provider.ListComments(ctx, itemID)
	})
}

// classifyComments runs one fetch-then-classify pass under the fetch
// deadline. The deadline is enforced on this side of the provider too, so a
// provider that ignores cancellation cannot stall the caller.
func (s *Service) classifyComments(ctx context.Context, fetch func(context.Context) ([]core.Comment, error)) (*core.ClassificationResult, error) {
	cctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	type out struct {
		c   *core.ClassificationResult
		err error
	}
	// Buffered so an overdue fetch never blocks after the deadline won.
	done := make(chan out, 1)
	go func() {
		batch, err := fetch(cctx)
		if err != nil {
			done <- out{nil, err}
			return
		}
		c, err := s.classifier.Classify(cctx, batch)
		done <- out{c, err}
	}()

	select {
	case o := <-done:
		return o.c, o.err
	case <-cctx.Done():
		return nil, cctx.Err()
	}
}

// Analyze runs the metrics and comment branches concurrently over one
// fetch of the channel's items. Metrics failing fails the run; the comment
// branch failing only degrades it.
func (s *Service) Analyze(ctx context.Context, ref string) (*Analysis, error) {
	info, items, err := s.fetchItems(ctx, ref)
	if err != nil {
		return nil, err
	}

	type metricsOut struct {
		m   *core.ChannelMetrics
		err error
	}
	type commentsOut struct {
		c   *core.ClassificationResult
		err error
	}
	metricsCh := make(chan metricsOut, 1)
	commentsCh := make(chan commentsOut, 1)

	go func() {
		m, err := metrics.Aggregate(items)
		metricsCh <- metricsOut{m, err}
	}()
	go func() {
		c, err := s.classifyComments(ctx, func(ctx context.Context) ([]core.Comment, error) {
			return s.provider.ChannelComments(ctx, items)
		})
		commentsCh <- commentsOut{c, err}
	}()

	mo := <-metricsCh
	co := <-commentsCh
	if mo.err != nil {
		return nil, mo.err
	}
	analysis := &Analysis{Channel: info, Metrics: mo.m, Classification: co.c}
	if co.err != nil {
		logger.Warn("comment analysis failed, continuing with metrics only", "error", co.err.Error())
		analysis.Classification = nil
		analysis.Degraded = true
	}
	return analysis, nil
}

// GenerateIdeas runs a full analysis and feeds it to the idea pipeline.
func (s *Service) GenerateIdeas(ctx context.Context, ref, customPrompt string) (*Analysis, []core.Idea, error) {
	if s.ideas == nil {
		return nil, nil, errors.New("idea generation is not configured")
	}
	analysis, err := s.Analyze(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	out, err := s.ideas.GenerateIdeas(ctx, ideas.Request{
		Metrics:        analysis.Metrics,
		Classification: analysis.Classification,
		Channel:        analysis.Channel,
		CustomPrompt:   customPrompt,
	})
	if err != nil {
		return analysis, nil, err
	}
	return analysis, out, nil
}

// fetchItems resolves the channel and lists its items under the fetch
// deadline. Channel resolution failing is tolerated when the ref is
// already a usable ID.
func (s *Service) fetchItems(ctx context.Context, ref string) (*core.ChannelInfo, []core.ContentItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	channelID := ref
	info, err := s.provider.ChannelInfo(ctx, ref)
	if err != nil {
		logger.Warn("channel lookup failed, using ref as channel id", "ref", ref, "error", err.Error())
	} else {
		channelID = info.ID
	}
	items, err := s.provider.ListItems(ctx, channelID)
	if err != nil {
		return nil, nil, err
	}
	return info, items, nil
}
