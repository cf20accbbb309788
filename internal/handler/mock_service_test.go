package handler

import (
	"context"

	"github.com/google/uuid"

	"community-feed-api/internal/dto"
)

// MockFeedService is a mock implementation of FeedService
type MockFeedService struct {
	GetFeedFunc func(ctx context.Context, query dto.FeedQuery) (*dto.FeedResponse, error)
}

func (m *MockFeedService) GetFeed(ctx context.Context, query dto.FeedQuery) (*dto.FeedResponse, error) {
	if m.GetFeedFunc != nil {
		return m.GetFeedFunc(ctx, query)
	}
	return &dto.FeedResponse{}, nil
}

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	GetPostDetailFunc func(ctx context.Context, slug string) (*dto.PostDetailResponse, error)
	ListPostsFunc     func(ctx context.Context) ([]dto.EditorialPostResponse, error)
	CreatePostFunc    func(ctx context.Context, req *dto.CreateEditorialPostRequest) (*dto.EditorialPostResponse, error)
	UpdatePostFunc    func(ctx context.Context, postID uuid.UUID, req *dto.UpdateEditorialPostRequest) (*dto.EditorialPostResponse, error)
	SetPublishedFunc  func(ctx context.Context, postID uuid.UUID, published bool) (*dto.EditorialPostResponse, error)
	DeletePostFunc    func(ctx context.Context, postID uuid.UUID) error
	UploadCoverFunc   func(ctx context.Context, postID uuid.UUID, upload *dto.FileUpload) (*dto.EditorialPostResponse, error)
}

func (m *MockPostService) GetPostDetail(ctx context.Context, slug string) (*dto.PostDetailResponse, error) {
	if m.GetPostDetailFunc != nil {
		return m.GetPostDetailFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockPostService) ListPosts(ctx context.Context) ([]dto.EditorialPostResponse, error) {
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(ctx)
	}
	return nil, nil
}

func (m *MockPostService) CreatePost(ctx context.Context, req *dto.CreateEditorialPostRequest) (*dto.EditorialPostResponse, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID uuid.UUID, req *dto.UpdateEditorialPostRequest) (*dto.EditorialPostResponse, error) {
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, postID, req)
	}
	return nil, nil
}

func (m *MockPostService) SetPublished(ctx context.Context, postID uuid.UUID, published bool) (*dto.EditorialPostResponse, error) {
	if m.SetPublishedFunc != nil {
		return m.SetPublishedFunc(ctx, postID, published)
	}
	return nil, nil
}

func (m *MockPostService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, postID)
	}
	return nil
}

func (m *MockPostService) UploadCover(ctx context.Context, postID uuid.UUID, upload *dto.FileUpload) (*dto.EditorialPostResponse, error) {
	if m.UploadCoverFunc != nil {
		return m.UploadCoverFunc(ctx, postID, upload)
	}
	return nil, nil
}

// MockUserPostService is a mock implementation of UserPostService
type MockUserPostService struct {
	SubmitUserPostFunc       func(ctx context.Context, req *dto.SubmitUserPostRequest, image *dto.FileUpload) (*dto.UserPostResponse, error)
	GetUserPostDetailFunc    func(ctx context.Context, userPostID uuid.UUID) (*dto.UserPostDetailResponse, error)
	ListPendingUserPostsFunc func(ctx context.Context) ([]dto.UserPostResponse, error)
	ApproveUserPostFunc      func(ctx context.Context, userPostID uuid.UUID) error
	RejectUserPostFunc       func(ctx context.Context, userPostID uuid.UUID) error
	DeleteUserPostFunc       func(ctx context.Context, userPostID uuid.UUID) error
}

func (m *MockUserPostService) SubmitUserPost(ctx context.Context, req *dto.SubmitUserPostRequest, image *dto.FileUpload) (*dto.UserPostResponse, error) {
	if m.SubmitUserPostFunc != nil {
		return m.SubmitUserPostFunc(ctx, req, image)
	}
	return nil, nil
}

func (m *MockUserPostService) GetUserPostDetail(ctx context.Context, userPostID uuid.UUID) (*dto.UserPostDetailResponse, error) {
	if m.GetUserPostDetailFunc != nil {
		return m.GetUserPostDetailFunc(ctx, userPostID)
	}
	return nil, nil
}

func (m *MockUserPostService) ListPendingUserPosts(ctx context.Context) ([]dto.UserPostResponse, error) {
	if m.ListPendingUserPostsFunc != nil {
		return m.ListPendingUserPostsFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserPostService) ApproveUserPost(ctx context.Context, userPostID uuid.UUID) error {
	if m.ApproveUserPostFunc != nil {
		return m.ApproveUserPostFunc(ctx, userPostID)
	}
	return nil
}

func (m *MockUserPostService) RejectUserPost(ctx context.Context, userPostID uuid.UUID) error {
	if m.RejectUserPostFunc != nil {
		return m.RejectUserPostFunc(ctx, userPostID)
	}
	return nil
}

func (m *MockUserPostService) DeleteUserPost(ctx context.Context, userPostID uuid.UUID) error {
	if m.DeleteUserPostFunc != nil {
		return m.DeleteUserPostFunc(ctx, userPostID)
	}
	return nil
}

// MockInteractionService is a mock implementation of InteractionService
type MockInteractionService struct {
	ToggleLikeFunc                func(ctx context.Context, postID uuid.UUID) (*dto.LikeToggleResponse, error)
	ToggleCommentLikeFunc         func(ctx context.Context, commentID uuid.UUID) (*dto.LikeToggleResponse, error)
	PostCommentFunc               func(ctx context.Context, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListRepliesFunc               func(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error)
	ToggleUserPostLikeFunc        func(ctx context.Context, userPostID uuid.UUID) (*dto.LikeToggleResponse, error)
	ToggleUserPostCommentLikeFunc func(ctx context.Context, commentID uuid.UUID) (*dto.LikeToggleResponse, error)
	PostUserPostCommentFunc       func(ctx context.Context, userPostID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListUserPostRepliesFunc       func(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error)
}

func (m *MockInteractionService) ToggleLike(ctx context.Context, postID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, postID)
	}
	return &dto.LikeToggleResponse{}, nil
}

func (m *MockInteractionService) ToggleCommentLike(ctx context.Context, commentID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if m.ToggleCommentLikeFunc != nil {
		return m.ToggleCommentLikeFunc(ctx, commentID)
	}
	return &dto.LikeToggleResponse{}, nil
}

func (m *MockInteractionService) PostComment(ctx context.Context, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if m.PostCommentFunc != nil {
		return m.PostCommentFunc(ctx, postID, req)
	}
	return &dto.CommentResponse{}, nil
}

func (m *MockInteractionService) ListReplies(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error) {
	if m.ListRepliesFunc != nil {
		return m.ListRepliesFunc(ctx, commentID)
	}
	return []dto.CommentResponse{}, nil
}

func (m *MockInteractionService) ToggleUserPostLike(ctx context.Context, userPostID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if m.ToggleUserPostLikeFunc != nil {
		return m.ToggleUserPostLikeFunc(ctx, userPostID)
	}
	return &dto.LikeToggleResponse{}, nil
}

func (m *MockInteractionService) ToggleUserPostCommentLike(ctx context.Context, commentID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if m.ToggleUserPostCommentLikeFunc != nil {
		return m.ToggleUserPostCommentLikeFunc(ctx, commentID)
	}
	return &dto.LikeToggleResponse{}, nil
}

func (m *MockInteractionService) PostUserPostComment(ctx context.Context, userPostID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if m.PostUserPostCommentFunc != nil {
		return m.PostUserPostCommentFunc(ctx, userPostID, req)
	}
	return &dto.CommentResponse{}, nil
}

func (m *MockInteractionService) ListUserPostReplies(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error) {
	if m.ListUserPostRepliesFunc != nil {
		return m.ListUserPostRepliesFunc(ctx, commentID)
	}
	return []dto.CommentResponse{}, nil
}

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	GetOrCreateProfileFunc   func(ctx context.Context) (*dto.ProfileResponse, error)
	GetProfileByUsernameFunc func(ctx context.Context, username string) (*dto.ProfileDetailResponse, error)
	ListProfilesFunc         func(ctx context.Context) ([]dto.ProfileResponse, error)
	UpdateMyProfileFunc      func(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

func (m *MockProfileService) GetOrCreateProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	if m.GetOrCreateProfileFunc != nil {
		return m.GetOrCreateProfileFunc(ctx)
	}
	return &dto.ProfileResponse{}, nil
}

func (m *MockProfileService) GetProfileByUsername(ctx context.Context, username string) (*dto.ProfileDetailResponse, error) {
	if m.GetProfileByUsernameFunc != nil {
		return m.GetProfileByUsernameFunc(ctx, username)
	}
	return &dto.ProfileDetailResponse{}, nil
}

func (m *MockProfileService) ListProfiles(ctx context.Context) ([]dto.ProfileResponse, error) {
	if m.ListProfilesFunc != nil {
		return m.ListProfilesFunc(ctx)
	}
	return []dto.ProfileResponse{}, nil
}

func (m *MockProfileService) UpdateMyProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if m.UpdateMyProfileFunc != nil {
		return m.UpdateMyProfileFunc(ctx, req)
	}
	return &dto.ProfileResponse{}, nil
}
