package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-feed-api/internal/dto"
	"community-feed-api/internal/response"
	"community-feed-api/internal/service"
)

type ProfileHandler struct {
	profileService service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// ListProfiles godoc
// @Summary      프로필 목록
// @Tags         profiles
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.ProfileResponse} "조회 성공"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileService.ListProfiles(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, profiles)
}

// GetMyProfile godoc
// @Summary      내 프로필 조회
// @Description  첫 조회 시 표시 이름으로 사용자명을 정해 프로필을 생성합니다
// @Tags         profiles
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.ProfileResponse} "조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Security     BearerAuth
// @Router       /profiles/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.profileService.GetOrCreateProfile(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, profile)
}

// UpdateMyProfile godoc
// @Summary      내 프로필 수정
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateProfileRequest true "수정할 항목"
// @Success      200 {object} response.SuccessResponse{data=dto.ProfileResponse} "수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 사용자명, 소개 또는 아바타"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Security     BearerAuth
// @Router       /profiles/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateMyProfile(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, profile)
}

// GetProfile godoc
// @Summary      사용자명으로 프로필 조회
// @Description  대소문자를 구분하지 않습니다. 승인된 커뮤니티 글 목록을 포함합니다.
// @Tags         profiles
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} response.SuccessResponse{data=dto.ProfileDetailResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "프로필을 찾을 수 없음"
// @Router       /profiles/{username} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	detail, err := h.profileService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, detail)
}
