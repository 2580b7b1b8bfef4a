package cli

import (
	"errors"
	"fmt"

	"clinroots-cli/internal/api"
)

type validationError struct {
	field  string
	reason string
}

func (e validationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.field, e.reason)
}

func errValidation(field, reason string) error {
	return validationError{field: field, reason: reason}
}

// friendly rewrites gateway errors into actionable terminal messages.
// Credential rejection has already wiped the session by the time it
// surfaces here, so the only useful advice is to log in again.
func friendly(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return errors.New("session expired; run `clinroots login` to sign in again")
	}
	return err
}
