package api

import (
	"context"
	"strconv"
	"time"

	"finance_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Cached read responses live this long at most; write invalidation usually
// clears them sooner.
const cacheTTL = 60 * time.Second

// currentUserID reads the authenticated user id the JWT middleware stored in
// the request context
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func categoriesKey(userID uint) string {
	return "categories:user:" + strconv.Itoa(int(userID))
}

func summaryKey(userID uint) string {
	return "summary:user:" + strconv.Itoa(int(userID))
}

func monthlyFlowKey(userID uint, year int) string {
	return "monthlyflow:user:" + strconv.Itoa(int(userID)) + ":year:" + strconv.Itoa(year)
}

// invalidateReportCaches drops every cached read a transaction write can
// change: the category rollups, the summary, and the monthly flow of the
// given years. Flows of years not listed here age out with the TTL
func invalidateReportCaches(ctx context.Context, rdb *redis.Client, userID uint, years ...int) {
	keys := []string{categoriesKey(userID), summaryKey(userID)}
	for _, year := range years {
		keys = append(keys, monthlyFlowKey(userID, year))
	}
	_ = utils.DeleteCache(ctx, rdb, keys...)
}
