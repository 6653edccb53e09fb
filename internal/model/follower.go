package model

import "github.com/google/uuid"

// Follower is a directed edge: FromID follows ToID.
type Follower struct {
	FromID uuid.UUID `json:"from_id"`
	ToID   uuid.UUID `json:"to_id"`
}

type FollowerSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
