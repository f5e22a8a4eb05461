package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/folio/backend/internal/model"
	"github.com/go-playground/validator/v10"
)

// Rules are the optional, deployment-chosen checks on top of the base
// contract (all four fields present as strings, email well formed).
type Rules struct {
	// RequireNonEmpty rejects empty name, subject and message.
	RequireNonEmpty bool
	// MaxMessageLength caps the message in runes; zero means no cap.
	MaxMessageLength int
}

// Validator checks contact submissions.
type Validator struct {
	rules    Rules
	validate *validator.Validate
}

// NewValidator returns a Validator applying rules.
func NewValidator(rules Rules) *Validator {
	return &Validator{
		rules:    rules,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// DecodeContactInput parses a request body into a ContactInput. A body that
// is not a JSON object yields a *ValidationError on the "body" field. A field
// that is present but not a string is reported in the *ValidationError and
// left nil in the returned input, which is otherwise fully decoded.
func DecodeContactInput(body []byte) (model.ContactInput, error) {
	var in model.ContactInput

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		verr := &ValidationError{}
		verr.add("body", ErrTypeJSON, "request body must be a JSON object")
		return in, verr
	}

	verr := &ValidationError{}
	decode := func(field string, dst **string) {
		v, ok := raw[field]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			verr.add(field, ErrTypeString, "str type expected")
			return
		}
		*dst = &s
	}
	decode("name", &in.Name)
	decode("email", &in.Email)
	decode("subject", &in.Subject)
	decode("message", &in.Message)

	if len(verr.Fields) > 0 {
		return in, verr
	}
	return in, nil
}

// Validate checks in and returns the document fields it carries. The
// returned document has no CreatedAt or Status yet. On failure the error is a
// *ValidationError listing every rejected field.
func (v *Validator) Validate(in model.ContactInput) (model.ContactDocument, error) {
	verr := &ValidationError{}

	text := func(field string, p *string) string {
		if p == nil {
			verr.add(field, ErrTypeRequired, "field required")
			return ""
		}
		if v.rules.RequireNonEmpty && strings.TrimSpace(*p) == "" {
			verr.add(field, ErrTypeEmpty, "must not be empty")
		}
		return *p
	}

	doc := model.ContactDocument{}
	doc.Name = text("name", in.Name)

	if in.Email == nil {
		verr.add("email", ErrTypeRequired, "field required")
	} else {
		doc.Email = *in.Email
		if !v.validEmail(doc.Email) {
			verr.add("email", ErrTypeEmail, "value is not a valid email address")
		}
	}

	doc.Subject = text("subject", in.Subject)
	doc.Message = text("message", in.Message)

	if in.Message != nil && v.rules.MaxMessageLength > 0 &&
		utf8.RuneCountInString(doc.Message) > v.rules.MaxMessageLength {
		verr.add("message", ErrTypeTooLong, "message is too long")
	}

	if len(verr.Fields) > 0 {
		return model.ContactDocument{}, verr
	}
	return doc, nil
}

// validEmail requires local@domain with a dotted domain and no unescaped
// whitespace, then defers to the validator's address grammar.
func (v *Validator) validEmail(addr string) bool {
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 || at == len(addr)-1 {
		return false
	}
	local, domain := addr[:at], addr[at+1:]

	quoted := len(local) >= 2 && local[0] == '"' && local[len(local)-1] == '"'
	if !quoted && strings.IndexFunc(local, unicode.IsSpace) >= 0 {
		return false
	}
	if strings.IndexFunc(domain, unicode.IsSpace) >= 0 || !strings.Contains(domain, ".") {
		return false
	}
	return v.validate.Var(addr, "email") == nil
}
