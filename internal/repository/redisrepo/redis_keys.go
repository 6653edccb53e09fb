package redisrepo

import "fmt"

const (
	USER_KEY            = "user:%s"            // <userID>
	FOLLOWER_COUNT_KEY  = "follower-count:%s"  // <userID>
	FOLLOWING_COUNT_KEY = "following-count:%s" // <userID>
)

func UserKey(userID string) string {
	return fmt.Sprintf(USER_KEY, userID)
}

func FollowerCountKey(userID string) string {
	return fmt.Sprintf(FOLLOWER_COUNT_KEY, userID)
}

func FollowingCountKey(userID string) string {
	return fmt.Sprintf(FOLLOWING_COUNT_KEY, userID)
}
