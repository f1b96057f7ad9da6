// Package dto defines the response bodies of the feed endpoints.
package dto

import (
	postdto "feed_backend/internal/feature/post/transport/http/dto"
)

// FeedReq carries the feed query. Non-numeric values fall back to defaults.
type FeedReq struct {
	Page     string `form:"page"`
	PageSize string `form:"pageSize"`
	Limit    string `form:"limit"`
}

// FeedRes is one page of the public feed.
type FeedRes struct {
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Posts    []postdto.PostRes `json:"posts"`
}
