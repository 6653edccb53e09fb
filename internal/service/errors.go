package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")

	ErrUnauthenticated = errors.New("you can't do it before authenticate")
	ErrAccessDenied = errors.New("you don't have access to this resource")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch = errors.New("password and confirm password don't match")

	ErrUserWithUsernameAlreadyExists = errors.New("user with this username already exists")
	ErrUserWithEmailAlreadyExists = errors.New("user with this email already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrAlreadyFollowing = errors.New("you are already following this user")
	ErrNotFollowing = errors.New("you are not following this user")
	ErrCannotFollowSelf = errors.New("you can't follow yourself")
	ErrAlreadyLiked = errors.New("you already like this post")
	ErrNotLiked = errors.New("you can't remove like from this post")

	ErrEventCatalogIncomplete = errors.New("event catalog has no row for this event type")
)
