package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-feed-api/internal/dto"
	"community-feed-api/internal/response"
	"community-feed-api/internal/service"
)

// UserPostHandler serves community posts and their comments
type UserPostHandler struct {
	userPostService    service.UserPostService
	interactionService service.InteractionService
	logger             *zap.Logger
}

func NewUserPostHandler(userPostService service.UserPostService, interactionService service.InteractionService, logger *zap.Logger) *UserPostHandler {
	return &UserPostHandler{
		userPostService:    userPostService,
		interactionService: interactionService,
		logger:             logger,
	}
}

// SubmitUserPost godoc
// @Summary      커뮤니티 글 제출
// @Description  승인 대기 상태로 글을 제출합니다. 사용자당 하루 한 번만 제출할 수 있습니다.
// @Description  JSON 또는 multipart/form-data(image 필드에 이미지)를 받습니다.
// @Tags         user-posts
// @Accept       json,mpfd
// @Produce      json
// @Param        request body dto.SubmitUserPostRequest false "제출 내용 (JSON)"
// @Param        title formData string false "제목 (multipart)"
// @Param        body formData string false "본문 (multipart)"
// @Param        embedUrl formData string false "YouTube, Instagram 또는 Facebook 링크 (multipart)"
// @Param        image formData file false "이미지 (JPEG, PNG, GIF, WebP, 최대 5MB)"
// @Success      201 {object} response.SuccessResponse{data=dto.UserPostResponse} "제출 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 입력"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      429 {object} response.ErrorResponse "오늘 이미 제출함"
// @Security     BearerAuth
// @Router       /user-posts [post]
func (h *UserPostHandler) SubmitUserPost(c *gin.Context) {
	var req dto.SubmitUserPostRequest
	var image *dto.FileUpload

	if isMultipart(c) {
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid multipart body")
			return
		}
		if err := c.ShouldBind(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
			return
		}
		upload, closeFn, err := formImage(c)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid image upload")
			return
		}
		defer closeFn()
		image = upload
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	post, err := h.userPostService.SubmitUserPost(c.Request.Context(), &req, image)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, post)
}

// GetUserPostDetail godoc
// @Summary      커뮤니티 글 상세 조회
// @Description  승인된 글만 조회됩니다. 댓글과 한 단계의 답글, 좋아요 수와 본인의 좋아요 여부를 포함합니다.
// @Tags         user-posts
// @Produce      json
// @Param        id path string true "User post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.UserPostDetailResponse} "조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 ID"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없거나 미승인"
// @Security     BearerAuth
// @Router       /user-posts/{id} [get]
func (h *UserPostHandler) GetUserPostDetail(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "user post")
	if !ok {
		return
	}

	detail, err := h.userPostService.GetUserPostDetail(c.Request.Context(), postID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, detail)
}

// ToggleLike godoc
// @Summary      커뮤니티 글 좋아요 토글
// @Tags         user-posts
// @Produce      json
// @Param        id path string true "User post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeToggleResponse} "토글 성공"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /user-posts/{id}/like [post]
func (h *UserPostHandler) ToggleLike(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "user post")
	if !ok {
		return
	}

	result, err := h.interactionService.ToggleUserPostLike(c.Request.Context(), postID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// PostComment godoc
// @Summary      커뮤니티 글 댓글 작성
// @Tags         user-posts
// @Accept       json
// @Produce      json
// @Param        id path string true "User post ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "댓글 내용"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse} "작성 성공"
// @Failure      400 {object} response.ErrorResponse "빈 댓글 또는 잘못된 parentId"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /user-posts/{id}/comments [post]
func (h *UserPostHandler) PostComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "user post")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.interactionService.PostUserPostComment(c.Request.Context(), postID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// ToggleCommentLike godoc
// @Summary      커뮤니티 댓글 좋아요 토글
// @Tags         user-post-comments
// @Produce      json
// @Param        id path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeToggleResponse} "토글 성공"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "댓글을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /user-post-comments/{id}/like [post]
func (h *UserPostHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id", "comment")
	if !ok {
		return
	}

	result, err := h.interactionService.ToggleUserPostCommentLike(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ListReplies godoc
// @Summary      커뮤니티 댓글의 답글 목록
// @Tags         user-post-comments
// @Produce      json
// @Param        id path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "댓글을 찾을 수 없음"
// @Router       /user-post-comments/{id}/replies [get]
func (h *UserPostHandler) ListReplies(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id", "comment")
	if !ok {
		return
	}

	replies, err := h.interactionService.ListUserPostReplies(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, replies)
}
