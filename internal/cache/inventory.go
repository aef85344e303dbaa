package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix  = "user:%d"
	PostKeyPrefix  = "post:%d"
	FeedKeyPrefix  = "feed:p%d:l%d"
	StatsKeyPrefix = "admin:stats"
)

const (
	UserTTL  = 5 * time.Minute
	PostTTL  = 30 * time.Minute
	FeedTTL  = 1 * time.Minute
	StatsTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func FeedKey(page, limit int) string {
	return fmt.Sprintf(FeedKeyPrefix, page, limit)
}

func StatsKey() string {
	return StatsKeyPrefix
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeed drops all cached feed pages. Feed keys are page-scoped so a
// SCAN pass is needed rather than a single DEL.
func InvalidateFeed(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "feed:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, StatsKey())
}
