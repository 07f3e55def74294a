package letter

import (
	ierr "github.com/papertrails/papertrails/internal/errors"
)

func NewLetterNotFoundError(id string) error {
	return ierr.NewError("letter not found").
		WithHintf("Letter %s was not found", id).
		WithReportableDetails(map[string]any{
			"letter_id": id,
		}).
		Mark(ierr.ErrNotFound)
}

// NewPreconditionError reports a relationship a reference number cannot be built without
func NewPreconditionError(message string) error {
	return ierr.NewError(message).
		WithHint(message).
		Mark(ierr.ErrValidation)
}

// NewUnresolvedRelationError reports a required relationship whose id does not exist
func NewUnresolvedRelationError(id, message string) error {
	return ierr.NewError(message).
		WithHint(message).
		WithReportableDetails(map[string]any{
			"id": id,
		}).
		Mark(ierr.ErrValidation)
}
