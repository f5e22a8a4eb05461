package service

import (
	"context"

	"github.com/folio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates in, stamps it with the current UTC time and status
	// "new", and persists it. It returns a *ValidationError for bad input and
	// a *StorageError when the store fails.
	Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error)

	// Validate applies the same checks as Submit without persisting. It
	// returns nil or a *ValidationError.
	Validate(in model.ContactInput) error

	// List returns every stored submission without identifiers.
	List(ctx context.Context) ([]*model.ContactDocument, error)
}
