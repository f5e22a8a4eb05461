package service

import (
	"context"
	"time"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo      repository.ContactRepository
	validator *Validator
	now       func() time.Time
}

// Option customises a ContactService.
type Option func(*contactServiceImpl)

// WithClock replaces time.Now as the source of created_at.
func WithClock(now func() time.Time) Option {
	return func(s *contactServiceImpl) { s.now = now }
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository, rules Rules, opts ...Option) ContactService {
	s := &contactServiceImpl{
		repo:      repo,
		validator: NewValidator(rules),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit persists exactly one document per valid input.
func (s *contactServiceImpl) Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
	doc, err := s.validator.Validate(in)
	if err != nil {
		return nil, err
	}
	doc.CreatedAt = s.now().UTC().Format(model.CreatedAtLayout)
	doc.Status = model.ContactStatusNew

	id, err := s.repo.Insert(ctx, &doc)
	if err != nil {
		return nil, &StorageError{Op: "insert", Err: err}
	}
	return &model.ContactSubmission{ID: id, ContactDocument: doc}, nil
}

func (s *contactServiceImpl) Validate(in model.ContactInput) error {
	if _, err := s.validator.Validate(in); err != nil {
		return err
	}
	return nil
}

// List returns the store's documents, never nil.
func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactDocument, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "find", Err: err}
	}
	if docs == nil {
		docs = []*model.ContactDocument{}
	}
	return docs, nil
}
