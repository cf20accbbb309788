package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-feed-api/internal/dto"
	"community-feed-api/internal/response"
	"community-feed-api/internal/service"
)

// PostHandler serves editorial posts and their comments to readers
type PostHandler struct {
	postService        service.PostService
	interactionService service.InteractionService
	logger             *zap.Logger
}

func NewPostHandler(postService service.PostService, interactionService service.InteractionService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService:        postService,
		interactionService: interactionService,
		logger:             logger,
	}
}

// GetPostDetail godoc
// @Summary      에디토리얼 글 상세 조회
// @Description  slug로 공개된 글을 조회합니다. 댓글과 한 단계의 답글, 좋아요 수와 본인의 좋아요 여부를 포함합니다.
// @Tags         posts
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200 {object} response.SuccessResponse{data=dto.PostDetailResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없거나 비공개"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Security     BearerAuth
// @Router       /posts/{slug} [get]
func (h *PostHandler) GetPostDetail(c *gin.Context) {
	// the post routes share one wildcard, which holds the slug here
	slug := c.Param("id")

	detail, err := h.postService.GetPostDetail(c.Request.Context(), slug)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, detail)
}

// ToggleLike godoc
// @Summary      에디토리얼 글 좋아요 토글
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeToggleResponse} "토글 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Post ID"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	result, err := h.interactionService.ToggleLike(c.Request.Context(), postID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// PostComment godoc
// @Summary      에디토리얼 글 댓글 작성
// @Description  parentId를 지정하면 같은 글의 댓글에 대한 답글이 됩니다
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "댓글 내용"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse} "작성 성공"
// @Failure      400 {object} response.ErrorResponse "빈 댓글 또는 잘못된 parentId"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) PostComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.interactionService.PostComment(c.Request.Context(), postID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// ToggleCommentLike godoc
// @Summary      에디토리얼 댓글 좋아요 토글
// @Tags         comments
// @Produce      json
// @Param        id path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeToggleResponse} "토글 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Comment ID"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "댓글을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /comments/{id}/like [post]
func (h *PostHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id", "comment")
	if !ok {
		return
	}

	result, err := h.interactionService.ToggleCommentLike(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ListReplies godoc
// @Summary      댓글의 답글 목록
// @Description  댓글의 직접 답글만 반환합니다
// @Tags         comments
// @Produce      json
// @Param        id path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse} "조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Comment ID"
// @Failure      404 {object} response.ErrorResponse "댓글을 찾을 수 없음"
// @Router       /comments/{id}/replies [get]
func (h *PostHandler) ListReplies(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id", "comment")
	if !ok {
		return
	}

	replies, err := h.interactionService.ListReplies(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, replies)
}
