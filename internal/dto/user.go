package dto

import "github.com/google/uuid"

type UserMainInfo struct {
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	ProfileImage []byte    `json:"profile_image"`
	IsFollowing  bool      `json:"is_following"`
}
