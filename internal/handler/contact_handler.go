package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/folio/backend/internal/metrics"
	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/service"
)

// maxBodyBytes caps the size of a contact submission body.
const maxBodyBytes = 1 << 20

// ContactHandler handles contact form submission and listing.
type ContactHandler struct {
	contactService service.ContactService
	metrics        *metrics.Metrics
}

// NewContactHandler creates a ContactHandler with the given service.
// m may be nil.
func NewContactHandler(contactService service.ContactService, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{contactService: contactService, metrics: m}
}

func (h *ContactHandler) count(outcome string) {
	if h.metrics != nil {
		h.metrics.Submission(outcome)
	}
}

// Submit handles POST /api/contact.
// name, email, subject and message are required strings; email must be a
// valid address. Validation failures answer 422 with per-field detail.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.count(metrics.OutcomeRejected)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "body_too_large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid_body")
		return
	}

	var sub *model.ContactSubmission
	var verr *service.ValidationError
	in, err := service.DecodeContactInput(body)
	switch {
	case err == nil:
		sub, err = h.contactService.Submit(r.Context(), in)
	case errors.As(err, &verr) && !verr.Has("body"):
		// report the remaining fields next to the type errors
		var rest *service.ValidationError
		if errors.As(h.contactService.Validate(in), &rest) {
			verr.Merge(rest)
		}
	}

	switch {
	case err == nil:
		h.count(metrics.OutcomeAccepted)
		slog.InfoContext(r.Context(), "contact submitted", "id", sub.ID)
		writeJSON(w, r, http.StatusOK, sub)

	case errors.As(err, &verr):
		h.count(metrics.OutcomeRejected)
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation_failed",
			Detail: verr.Fields,
		})

	default:
		h.count(metrics.OutcomeFailed)
		slog.ErrorContext(r.Context(), "contact submit failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "submit_failed")
	}
}

// listResponse is the JSON response for GET /api/contacts.
type listResponse struct {
	Contacts []*model.ContactDocument `json:"contacts"`
}

// List handles GET /api/contacts. Documents are returned without ids.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.contactService.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "contact list failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, r, http.StatusOK, listResponse{Contacts: docs})
}
