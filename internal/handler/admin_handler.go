package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-feed-api/internal/dto"
	"community-feed-api/internal/response"
	"community-feed-api/internal/service"
)

// AdminHandler serves moderation and editorial administration behind the admin key
type AdminHandler struct {
	postService     service.PostService
	userPostService service.UserPostService
	logger          *zap.Logger
}

func NewAdminHandler(postService service.PostService, userPostService service.UserPostService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		postService:     postService,
		userPostService: userPostService,
		logger:          logger,
	}
}

// ListPendingUserPosts godoc
// @Summary      승인 대기 커뮤니티 글 목록
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.UserPostResponse} "조회 성공"
// @Failure      401 {object} response.ErrorResponse "관리자 키 필요"
// @Failure      403 {object} response.ErrorResponse "잘못된 관리자 키"
// @Security     AdminKey
// @Router       /admin/user-posts/pending [get]
func (h *AdminHandler) ListPendingUserPosts(c *gin.Context) {
	posts, err := h.userPostService.ListPendingUserPosts(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, posts)
}

// ApproveUserPost godoc
// @Summary      커뮤니티 글 승인
// @Tags         admin
// @Produce      json
// @Param        id path string true "User post ID (UUID)"
// @Success      200 {object} response.SuccessResponse "승인 성공"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     AdminKey
// @Router       /admin/user-posts/{id}/approve [post]
func (h *AdminHandler) ApproveUserPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "user post")
	if !ok {
		return
	}
	if err := h.userPostService.ApproveUserPost(c.Request.Context(), postID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"userPostId": postID, "isApproved": true})
}

// RejectUserPost godoc
// @Summary      커뮤니티 글 승인 취소
// @Description  글을 다시 승인 대기 상태로 되돌립니다
// @Tags         admin
// @Produce      json
// @Param        id path string true "User post ID (UUID)"
// @Success      200 {object} response.SuccessResponse "처리 성공"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     AdminKey
// @Router       /admin/user-posts/{id}/reject [post]
func (h *AdminHandler) RejectUserPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "user post")
	if !ok {
		return
	}
	if err := h.userPostService.RejectUserPost(c.Request.Context(), postID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"userPostId": postID, "isApproved": false})
}

// DeleteUserPost godoc
// @Summary      커뮤니티 글 삭제
// @Description  댓글, 좋아요, 첨부 이미지를 함께 삭제합니다
// @Tags         admin
// @Param        id path string true "User post ID (UUID)"
// @Success      204 "삭제 성공"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     AdminKey
// @Router       /admin/user-posts/{id} [delete]
func (h *AdminHandler) DeleteUserPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "user post")
	if !ok {
		return
	}
	if err := h.userPostService.DeleteUserPost(c.Request.Context(), postID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPosts godoc
// @Summary      에디토리얼 글 전체 목록
// @Description  비공개 글을 포함합니다
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.EditorialPostResponse} "조회 성공"
// @Security     AdminKey
// @Router       /admin/posts [get]
func (h *AdminHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, posts)
}

// CreatePost godoc
// @Summary      에디토리얼 글 작성
// @Description  slug를 생략하면 제목에서 만들고, 겹치면 숫자 접미사를 붙입니다. 지정한 slug가 이미 쓰이면 400을 반환합니다.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateEditorialPostRequest true "글 내용"
// @Success      201 {object} response.SuccessResponse{data=dto.EditorialPostResponse} "작성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 입력 또는 사용 중인 slug"
// @Security     AdminKey
// @Router       /admin/posts [post]
func (h *AdminHandler) CreatePost(c *gin.Context) {
	var req dto.CreateEditorialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      에디토리얼 글 수정
// @Description  slug는 한 번 정해지면 바뀌지 않습니다
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID (UUID)"
// @Param        request body dto.UpdateEditorialPostRequest true "수정할 항목"
// @Success      200 {object} response.SuccessResponse{data=dto.EditorialPostResponse} "수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 입력"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     AdminKey
// @Router       /admin/posts/{id} [put]
func (h *AdminHandler) UpdatePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	var req dto.UpdateEditorialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), postID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, post)
}

// PublishPost godoc
// @Summary      에디토리얼 글 공개
// @Tags         admin
// @Produce      json
// @Param        id path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.EditorialPostResponse} "공개 성공"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     AdminKey
// @Router       /admin/posts/{id}/publish [post]
func (h *AdminHandler) PublishPost(c *gin.Context) {
	h.setPublished(c, true)
}

// UnpublishPost godoc
// @Summary      에디토리얼 글 비공개
// @Tags         admin
// @Produce      json
// @Param        id path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.EditorialPostResponse} "비공개 성공"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     AdminKey
// @Router       /admin/posts/{id}/unpublish [post]
func (h *AdminHandler) UnpublishPost(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *AdminHandler) setPublished(c *gin.Context, published bool) {
	postID, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}
	post, err := h.postService.SetPublished(c.Request.Context(), postID, published)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, post)
}

// UploadCover godoc
// @Summary      커버 이미지 업로드
// @Description  기존 커버는 정리 작업에서 삭제됩니다
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Param        id path string true "Post ID (UUID)"
// @Param        image formData file true "이미지 (JPEG, PNG, GIF, WebP, 최대 5MB)"
// @Success      200 {object} response.SuccessResponse{data=dto.EditorialPostResponse} "업로드 성공"
// @Failure      400 {object} response.ErrorResponse "이미지 없음 또는 잘못된 형식"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     AdminKey
// @Router       /admin/posts/{id}/cover [post]
func (h *AdminHandler) UploadCover(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	if !isMultipart(c) {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Expected multipart/form-data")
		return
	}
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid multipart body")
		return
	}
	upload, closeFn, err := formImage(c)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid image upload")
		return
	}
	defer closeFn()
	if upload == nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Image is required")
		return
	}

	post, err := h.postService.UploadCover(c.Request.Context(), postID, upload)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, post)
}

// DeletePost godoc
// @Summary      에디토리얼 글 삭제
// @Description  댓글, 좋아요, 커버 이미지를 함께 삭제합니다
// @Tags         admin
// @Param        id path string true "Post ID (UUID)"
// @Success      204 "삭제 성공"
// @Failure      404 {object} response.ErrorResponse "글을 찾을 수 없음"
// @Security     AdminKey
// @Router       /admin/posts/{id} [delete]
func (h *AdminHandler) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}
	if err := h.postService.DeletePost(c.Request.Context(), postID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
