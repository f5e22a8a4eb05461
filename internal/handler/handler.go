package handler

import (
	"github.com/folio/backend/internal/repository"
)

// Handler serves the endpoints that are not tied to contacts.
type Handler struct {
	db           repository.DB
	checkStorage bool
}

// New creates a Handler. When checkStorage is false the health check reports
// process liveness only and db is never called.
func New(db repository.DB, checkStorage bool) *Handler {
	return &Handler{db: db, checkStorage: checkStorage}
}
