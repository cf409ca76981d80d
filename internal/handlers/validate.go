package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"andhara-backend/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decode unmarshals the body into dst and runs its validate tags. Both
// failure modes surface as a validation error, which maps to 400.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", apperrors.ErrValidation)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
