// Package service holds the business logic of the store. Handlers stay thin
// and delegate here; every method returns errors from the errs taxonomy.
package service

import (
	"errors"

	"gameaccount_store/internal/errs"
)

// wrapErr passes taxonomy errors through and classifies anything else as
// Internal so raw driver errors never leak to callers.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return errs.Internal(err)
}
