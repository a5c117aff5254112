// Package youtube implements the content provider on the YouTube Data API.
// All failures are wrapped in core.ProviderError with a retryable hint so
// callers can distinguish quota pressure from bad requests.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"tubelens/internal/core"
	"tubelens/internal/logger"
)

const statsBatchSize = 50 // Videos.List accepts at most 50 ids per call

// Client talks to the YouTube Data API v3 with an API key.
type Client struct {
	svc         *yt.Service
	maxItems    int64
	maxComments int64
}

// NewClient builds an API-key client. Limits clamp how much one analysis
// run is allowed to fetch.
func NewClient(ctx context.Context, apiKey string, maxItems, maxComments int64) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("youtube: API key is required")
	}
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube: creating service: %w", err)
	}
	if maxItems <= 0 {
		maxItems = 50
	}
	if maxComments <= 0 {
		maxComments = 100
	}
	return &Client{svc: svc, maxItems: maxItems, maxComments: maxComments}, nil
}

// ChannelInfo resolves a channel reference, either a raw channel ID or an
// @handle, into channel metadata.
func (c *Client) ChannelInfo(ctx context.Context, ref string) (*core.ChannelInfo, error) {
	call := c.svc.Channels.List([]string{"snippet", "statistics"}).Context(ctx)
	if strings.HasPrefix(ref, "@") {
		call = call.ForHandle(ref)
	} else {
		call = call.Id(ref)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, wrap("youtube.ChannelInfo", err)
	}
	if len(resp.Items) == 0 {
		return nil, &core.ProviderError{Op: "youtube.ChannelInfo", Err: fmt.Errorf("channel %q not found", ref)}
	}
	ch := resp.Items[0]
	info := &core.ChannelInfo{
		ID:    ch.Id,
		Title: ch.Snippet.Title,
	}
	info.Description = ch.Snippet.Description
	if ch.Statistics != nil {
		info.Subscribers = int64(ch.Statistics.SubscriberCount)
		info.TotalViews = int64(ch.Statistics.ViewCount)
		info.VideoCount = int64(ch.Statistics.VideoCount)
	}
	return info, nil
}

// ListItems returns the channel's most recent items with statistics
// attached, newest first, up to the client's item limit.
func (c *Client) ListItems(ctx context.Context, channelID string) ([]core.ContentItem, error) {
	var ids []string
	pageToken := ""
	for int64(len(ids)) < c.maxItems {
		page := c.maxItems - int64(len(ids))
		if page > 50 {
			page = 50
		}
		call := c.svc.Search.List([]string{"id"}).
			ChannelId(channelID).
			Type("video").
			Order("date").
			MaxResults(page).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, wrap("youtube.ListItems", err)
		}
		for _, it := range resp.Items {
			if it.Id != nil && it.Id.VideoId != "" {
				ids = append(ids, it.Id.VideoId)
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" || len(resp.Items) == 0 {
			break
		}
	}
	if len(ids) == 0 {
		return nil, &core.ProviderError{Op: "youtube.ListItems", Err: fmt.Errorf("channel %q has no items", channelID)}
	}
	return c.GetStatistics(ctx, ids)
}

// GetStatistics fetches view, like, and comment counts for the given item
// ids, batching requests to the API's page limit. Order follows the input.
func (c *Client) GetStatistics(ctx context.Context, ids []string) ([]core.ContentItem, error) {
	byID := make(map[string]core.ContentItem, len(ids))
	for start := 0; start < len(ids); start += statsBatchSize {
		end := start + statsBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		resp, err := c.svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
			Id(ids[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, wrap("youtube.GetStatistics", err)
		}
		for _, v := range resp.Items {
			item := core.ContentItem{ID: v.Id}
			if v.Snippet != nil {
				item.Title = v.Snippet.Title
				item.PublishedAt = parseTime(v.Snippet.PublishedAt)
			}
			if v.Statistics != nil {
				item.Views = int64(v.Statistics.ViewCount)
				item.Likes = int64(v.Statistics.LikeCount)
				item.Comments = int64(v.Statistics.CommentCount)
			}
			if v.ContentDetails != nil {
				item.Duration = v.ContentDetails.Duration
			}
			byID[v.Id] = item
		}
	}
	items := make([]core.ContentItem, 0, len(byID))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// ListComments returns top-level comments for one item ordered by
// relevance, up to the client's comment limit.
func (c *Client) ListComments(ctx context.Context, itemID string) ([]core.Comment, error) {
	var comments []core.Comment
	pageToken := ""
	for int64(len(comments)) < c.maxComments {
		page := c.maxComments - int64(len(comments))
		if page > 100 {
			page = 100
		}
		call := c.svc.CommentThreads.List([]string{"snippet"}).
			VideoId(itemID).
			Order("relevance").
			TextFormat("plainText").
			MaxResults(page).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, wrap("youtube.ListComments", err)
		}
		for _, th := range resp.Items {
			if th.Snippet == nil || th.Snippet.TopLevelComment == nil || th.Snippet.TopLevelComment.Snippet == nil {
				continue
			}
			s := th.Snippet.TopLevelComment.Snippet
			comments = append(comments, core.Comment{
				ID:          th.Snippet.TopLevelComment.Id,
				Text:        s.TextDisplay,
				Author:      s.AuthorDisplayName,
				Likes:       s.LikeCount,
				PublishedAt: parseTime(s.PublishedAt),
				ItemID:      itemID,
			})
		}
		pageToken = resp.NextPageToken
		if pageToken == "" || len(resp.Items) == 0 {
			break
		}
	}
	return comments, nil
}

// ChannelComments gathers comments across the given items. A single item
// failing, commonly because its comments are disabled, is logged and
// skipped rather than failing the whole run.
func (c *Client) ChannelComments(ctx context.Context, items []core.ContentItem) ([]core.Comment, error) {
	var all []core.Comment
	for _, item := range items {
		batch, err := c.ListComments(ctx, item.ID)
		if err != nil {
			logger.Warn("skipping comments for item", "item_id", item.ID, "error", err.Error())
			continue
		}
		for i := range batch {
			batch[i].ItemTitle = item.Title
		}
		all = append(all, batch...)
	}
	return all, nil
}

// wrap converts an API error into a ProviderError, marking quota and
// server-side failures as retryable.
func wrap(op string, err error) error {
	var apiErr *googleapi.Error
	retryable := false
	if errors.As(err, &apiErr) {
		retryable = apiErr.Code == 429 || apiErr.Code >= 500
	}
	return &core.ProviderError{Op: op, Retryable: retryable, Err: err}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
