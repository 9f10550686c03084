package services

import "errors"

// Sentinel errors returned by the entity services. Handlers map these to
// HTTP status codes; anything else is treated as an internal failure.
var (
	ErrCollegeNotFound   = errors.New("college not found")
	ErrPGNotFound        = errors.New("pg not found")
	ErrFoodNotFound      = errors.New("food not found")
	ErrTransportNotFound = errors.New("transport not found")
	ErrMediaNotFound     = errors.New("media not found")

	ErrDuplicateCollegeName = errors.New("a college with this name already exists")
	ErrCollegeHasDependents = errors.New("college still has PGs or transports attached")

	ErrAlreadyInWishlist     = errors.New("pg is already in the wishlist")
	ErrWishlistEntryNotFound = errors.New("wishlist entry not found")

	ErrFileMissing          = errors.New("no file provided")
	ErrFileTooLarge         = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	ErrInvalidMediaOwner    = errors.New("exactly one owner id must be provided")
)
