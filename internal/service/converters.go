package service

import (
	"time"

	"community-feed-api/internal/client"
	"community-feed-api/internal/domain"
	"community-feed-api/internal/dto"
)

const dateLayout = "2006-01-02"

func toEditorialPostResponse(post *domain.EditorialPost, storage client.MediaStorage, withBody bool) dto.EditorialPostResponse {
	resp := dto.EditorialPostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Slug:      post.Slug,
		Summary:   post.Summary,
		CoverURL:  mediaURL(storage, post.CoverKey),
		Published: post.Published,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if withBody {
		resp.Body = post.Body
	}
	return resp
}

func toUserPostResponse(post *domain.UserPost, storage client.MediaStorage) dto.UserPostResponse {
	resp := dto.UserPostResponse{
		ID:          post.ID,
		AuthorID:    post.AuthorID,
		AuthorName:  post.AuthorName,
		Title:       post.Title,
		Body:        post.Body,
		ImageURL:    mediaURL(storage, post.ImageKey),
		EmbedURL:    post.EmbedURL,
		EmbedKind:   string(post.EmbedKind()),
		IsApproved:  post.IsApproved,
		SubmittedOn: time.Time(post.SubmittedOn).Format(dateLayout),
		CreatedAt:   post.CreatedAt,
	}
	if post.EmbedURL != "" {
		resp.EmbedPlayerURL = post.EmbedPlayerURL()
	}
	return resp
}

func toUserPostResponses(posts []*domain.UserPost, storage client.MediaStorage) []dto.UserPostResponse {
	result := make([]dto.UserPostResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, toUserPostResponse(p, storage))
	}
	return result
}

func toCommentResponse(c *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		UserID:     c.UserID,
		AuthorName: c.AuthorName,
		ParentID:   c.ParentID,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

func toProfileResponse(p *domain.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:    p.UserID,
		Username:  p.Username,
		Avatar:    p.Avatar,
		Bio:       p.Bio,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toFeedItemResponse(item domain.FeedItem, storage client.MediaStorage) dto.FeedItemResponse {
	switch item.Kind {
	case domain.KindEditorial:
		return dto.FeedItemResponse{Type: string(item.Kind), Post: toEditorialPostResponse(item.Editorial, storage, false)}
	default:
		return dto.FeedItemResponse{Type: string(item.Kind), Post: toUserPostResponse(item.Community, storage)}
	}
}
