package handler

import (
	"community-feed-api/internal/dto"
)

// The feed item "post" field is untyped, so swag cannot see which payloads it
// carries. This file references both so they land in the definitions section.

// FeedItemSchemas lists the payloads of dto.FeedItemResponse.Post by type
type FeedItemSchemas struct {
	Editorial dto.EditorialPostResponse `json:"editorial"`
	Community dto.UserPostResponse      `json:"community"`
}

// GetSchemaDocumentation is never routed
// @Summary      Feed item payloads (not a real endpoint)
// @Description  type "editorial" carries EditorialPostResponse, type "community" carries UserPostResponse
// @Tags         internal
// @Produce      json
// @Success      200 {object} FeedItemSchemas
// @Router       /internal/schemas [get]
func GetSchemaDocumentation() {}
