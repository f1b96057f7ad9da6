// Package usecase implements the post lifecycle: create, edit, delete and like.
package usecase

import "errors"

var (
	// ErrPostNotFound is returned when the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrForbidden is returned when the caller does not own the post.
	ErrForbidden = errors.New("not authorized to modify this post")

	// ErrMediaUpload is returned when the image could not be stored.
	// Nothing is written in that case.
	ErrMediaUpload = errors.New("media upload failed")
)
