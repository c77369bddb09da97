package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostsListKeyName = "posts:list:default"
	UserKeyPrefix    = "user:%d"
)

const (
	ListTTL = 1 * time.Minute
	UserTTL = 5 * time.Minute
)

// PostsListKey is the cache key for the default (unfiltered, first page)
// post listing.
func PostsListKey() string {
	return PostsListKeyName
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey())
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
