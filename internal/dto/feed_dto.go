package dto

// FeedQuery holds the optional pagination of the feed.
// Without size the whole feed is returned.
type FeedQuery struct {
	Page int `form:"page" binding:"omitempty,min=1" example:"1"`
	Size int `form:"size" binding:"omitempty,min=1" example:"20"`
}

// FeedItemResponse is one tagged entry of the merged feed
// @Description type is "editorial" or "community"; post is an EditorialPostResponse or a UserPostResponse accordingly
type FeedItemResponse struct {
	Type string      `json:"type" example:"editorial"`
	Post interface{} `json:"post"`
}

// FeedResponse is a page of the merged feed
type FeedResponse struct {
	Items []FeedItemResponse `json:"items"`
	Total int                `json:"total" example:"42"`
	Page  int                `json:"page" example:"1"`
	Size  int                `json:"size" example:"20"`
}
