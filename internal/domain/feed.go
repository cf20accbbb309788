package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind discriminates the two post families
type ContentKind string

const (
	KindEditorial ContentKind = "editorial"
	KindCommunity ContentKind = "community"
)

// FeedItem is one entry of the merged feed. Exactly one of Editorial or
// Community is set, matching Kind.
type FeedItem struct {
	Kind      ContentKind    `json:"type"`
	Editorial *EditorialPost `json:"editorial,omitempty"`
	Community *UserPost      `json:"community,omitempty"`
}

// EditorialItem wraps an editorial post
func EditorialItem(p *EditorialPost) FeedItem {
	return FeedItem{Kind: KindEditorial, Editorial: p}
}

// CommunityItem wraps a community post
func CommunityItem(p *UserPost) FeedItem {
	return FeedItem{Kind: KindCommunity, Community: p}
}

// ID returns the wrapped post's id
func (f FeedItem) ID() uuid.UUID {
	switch f.Kind {
	case KindEditorial:
		return f.Editorial.ID
	case KindCommunity:
		return f.Community.ID
	}
	return uuid.Nil
}

// CreatedAt returns the wrapped post's creation time
func (f FeedItem) CreatedAt() time.Time {
	switch f.Kind {
	case KindEditorial:
		return f.Editorial.CreatedAt
	case KindCommunity:
		return f.Community.CreatedAt
	}
	return time.Time{}
}

// FeedBefore reports whether a sorts before b: newer first, then editorial
// before community, then by id.
func FeedBefore(a, b FeedItem) bool {
	at, bt := a.CreatedAt(), b.CreatedAt()
	if !at.Equal(bt) {
		return at.After(bt)
	}
	if a.Kind != b.Kind {
		return a.Kind == KindEditorial
	}
	return a.ID().String() < b.ID().String()
}
