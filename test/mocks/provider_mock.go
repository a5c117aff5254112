package mocks

import (
	"context"
	"time"

	"tubelens/internal/core"
)

// MockContentProvider provides a mock implementation of analyzer.ContentProvider
type MockContentProvider struct {
	ChannelInfoFunc     func(ctx context.Context, ref string) (*core.ChannelInfo, error)
	ListItemsFunc       func(ctx context.Context, channelID string) ([]core.ContentItem, error)
	ListCommentsFunc    func(ctx context.Context, itemID string) ([]core.Comment, error)
	ChannelCommentsFunc func(ctx context.Context, items []core.ContentItem) ([]core.Comment, error)
}

func (m *MockContentProvider) ChannelInfo(ctx context.Context, ref string) (*core.ChannelInfo, error) {
	if m.ChannelInfoFunc != nil {
		return m.ChannelInfoFunc(ctx, ref)
	}
	return &core.ChannelInfo{
		ID:          "mock-channel-1",
		Title:       "Mock Channel",
		Subscribers: 1000,
	}, nil
}

func (m *MockContentProvider) ListItems(ctx context.Context, channelID string) ([]core.ContentItem, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, channelID)
	}
	return []core.ContentItem{
		{
			ID:          "mock-item-1",
			Title:       "Mock Item",
			PublishedAt: time.Date(2025, 1, 6, 18, 0, 0, 0, time.UTC),
			Views:       1000,
			Likes:       100,
			Comments:    10,
		},
	}, nil
}

func (m *MockContentProvider) ListComments(ctx context.Context, itemID string) ([]core.Comment, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, itemID)
	}
	return []core.Comment{
		{ID: "mock-comment-1", Text: "Mock comment", Likes: 5, ItemID: itemID},
	}, nil
}

func (m *MockContentProvider) ChannelComments(ctx context.Context, items []core.ContentItem) ([]core.Comment, error) {
	if m.ChannelCommentsFunc != nil {
		return m.ChannelCommentsFunc(ctx, items)
	}
	var all []core.Comment
	for _, item := range items {
		batch, err := m.ListComments(ctx, item.ID)
		if err != nil {
			continue
		}
		all = append(all, batch...)
	}
	return all, nil
}
