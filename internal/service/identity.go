package service

import "github.com/google/uuid"

// Principal is the resolved identity of the caller, passed explicitly
// into every operation. The zero value is the anonymous caller.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

var Anonymous = Principal{}

func (p Principal) IsAnonymous() bool {
	return p.UserID == uuid.Nil
}
