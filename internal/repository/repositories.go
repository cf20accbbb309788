package repository

import "gorm.io/gorm"

// Repositories bundles every store of the service over one connection
type Repositories struct {
	EditorialPosts       EditorialPostRepository
	UserPosts            UserPostRepository
	Comments             CommentRepository
	UserPostComments     CommentRepository
	PostLikes            LikeRepository
	CommentLikes         LikeRepository
	UserPostLikes        LikeRepository
	UserPostCommentLikes LikeRepository
	Profiles             ProfileRepository
	MediaOrphans         MediaOrphanRepository
}

// NewRepositories creates all repositories on db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		EditorialPosts:       NewEditorialPostRepository(db),
		UserPosts:            NewUserPostRepository(db),
		Comments:             NewCommentRepository(db),
		UserPostComments:     NewUserPostCommentRepository(db),
		PostLikes:            NewPostLikeRepository(db),
		CommentLikes:         NewCommentLikeRepository(db),
		UserPostLikes:        NewUserPostLikeRepository(db),
		UserPostCommentLikes: NewUserPostCommentLikeRepository(db),
		Profiles:             NewProfileRepository(db),
		MediaOrphans:         NewMediaOrphanRepository(db),
	}
}
