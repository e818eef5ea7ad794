package apihelpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type PaginatedQuery struct {
	Page  int64
	Limit int64
}

type PaginationInfo struct {
	CurrentPage int64 `json:"currentPage"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
	PageSize    int64 `json:"pageSize"`
}

func ParsePaginatedQueryFromCtx(c *gin.Context) (*PaginatedQuery, error) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		return nil, err
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil {
		return nil, err
	}

	return &PaginatedQuery{
		Page:  page,
		Limit: limit,
	}, nil
}

func PreparePaginationInfos(totalCount int64, page int64, limit int64) PaginationInfo {
	if limit < 1 {
		limit = 1
	}
	totalPages := (totalCount + limit - 1) / limit
	return PaginationInfo{
		CurrentPage: page,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		PageSize:    limit,
	}
}
