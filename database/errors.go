package database

import (
	"context"
	"errors"
	"time"

	"tourhub/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTimeout bounds a single store call, inheriting cancellation from the
// request context.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}

// NotFoundOr maps mongo.ErrNoDocuments to a NotFound error for the named
// resource and anything else to a persistence failure.
func NotFoundOr(op, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.NotFound(resource, id)
	}
	return utils.Persistence(op, err)
}

// ConflictOr maps unique-index violations to a Conflict error carrying
// message and anything else to a persistence failure.
func ConflictOr(op, message string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return &utils.AppError{Kind: utils.KindConflict, Message: message, Err: err}
	}
	return utils.Persistence(op, err)
}
