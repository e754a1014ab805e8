package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix    = "user:%d"
	videoKeyPrefix   = "video:%d"
	channelKeyPrefix = "channel:%s"
)

const (
	UserTTL    = 5 * time.Minute
	VideoTTL   = 10 * time.Minute
	ChannelTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func VideoKey(videoID uint) string {
	return fmt.Sprintf(videoKeyPrefix, videoID)
}

func ChannelKey(handle string) string {
	return fmt.Sprintf(channelKeyPrefix, handle)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateVideo(ctx context.Context, videoID uint) {
	Invalidate(ctx, VideoKey(videoID))
}

func InvalidateChannel(ctx context.Context, handle string) {
	Invalidate(ctx, ChannelKey(handle))
}
