package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Ad / tracking errors
	ErrAdNotFound       = errors.New("ad not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrClickRateLimited = errors.New("click rate limit exceeded")

	// Story / chapter errors
	ErrStoryNotFound   = errors.New("story not found")
	ErrChapterNotFound = errors.New("chapter not found")

	// Rating errors
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrRatingNotFound = errors.New("rating not found")

	// Follow errors
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")

	// Comment errors
	ErrCommentNotFound     = errors.New("comment not found")
	ErrParentNotFound      = errors.New("parent comment not found")
	ErrEmptyContent        = errors.New("comment content is empty")
	ErrContentTooLong      = errors.New("comment content exceeds maximum length")
	ErrInvalidCommentScope = errors.New("comment must target exactly one of story or chapter")

	// Reading progress errors
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
