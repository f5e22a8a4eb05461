package repository

import (
	"context"

	"github.com/folio/backend/internal/model"
)

// DB は接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository is the document store holding contact submissions.
// Implementations are safe for concurrent use.
type ContactRepository interface {
	DB
	// Insert stores one document and returns the identifier the store
	// generated for it.
	Insert(ctx context.Context, doc *model.ContactDocument) (string, error)
	// FindAll returns every stored document in the store's native order.
	// Identifiers are not part of the result.
	FindAll(ctx context.Context) ([]*model.ContactDocument, error)
}
