package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// invalidMessager supplies the user-facing message for a rejected payload.
type invalidMessager interface {
	InvalidMessage() string
}

// Validate checks the struct tags of req and returns a ValidationError listing the
// offending fields.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid request payload", nil)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, lowerFirst(fe.Field()))
	}

	message := "invalid request payload"
	if m, ok := req.(invalidMessager); ok {
		message = m.InvalidMessage()
	}
	return apperrors.NewValidationError(message, map[string]any{"fields": fields})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
