package service

import "context"

// Subjects for domain events emitted over the message bus.
const (
	SubjectBookCreated   = "booksy.catalog.book_created"
	SubjectBookUpdated   = "booksy.catalog.book_updated"
	SubjectBookDeleted   = "booksy.catalog.book_deleted"
	SubjectPasswordReset = "booksy.auth.password_reset"
)

// EventPublisher pushes domain events to the message bus. Publishing is
// best-effort from the caller's point of view; a failed publish is logged
// but never fails the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

type BookEvent struct {
	BookID string `json:"book_id"`
	Title  string `json:"title"`
	ISBN   string `json:"isbn,omitempty"`
}

type PasswordResetEvent struct {
	UserID string `json:"user_id"`
}
