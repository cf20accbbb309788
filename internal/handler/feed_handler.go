package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-feed-api/internal/dto"
	"community-feed-api/internal/response"
	"community-feed-api/internal/service"
)

type FeedHandler struct {
	feedService service.FeedService
	logger      *zap.Logger
}

func NewFeedHandler(feedService service.FeedService, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		logger:      logger,
	}
}

// GetFeed godoc
// @Summary      통합 피드 조회
// @Description  공개된 에디토리얼 글과 승인된 커뮤니티 글을 최신순으로 합쳐 반환합니다.
// @Description  size를 생략하면 전체 피드를 한 페이지로 반환합니다.
// @Tags         feed
// @Produce      json
// @Param        page query int false "페이지 번호 (1부터)"
// @Param        size query int false "페이지 크기"
// @Success      200 {object} response.SuccessResponse{data=dto.FeedResponse} "피드 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 페이지 파라미터"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	var query dto.FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid page parameters")
		return
	}

	feed, err := h.feedService.GetFeed(c.Request.Context(), query)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, feed)
}
