package services

import (
	"errors"
	"log/slog"

	"github.com/campusgoods/market-backend/internal/apperr"
)

// serviceErr normalizes a transaction result: business outcomes pass
// through untouched, anything else is logged once at error level and
// wrapped as a dependency failure.
func serviceErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	var e *apperr.Error
	if errors.As(err, &e) {
		if e.Kind == apperr.KindDependency {
			slog.Error(msg, "error", err)
		}
		return err
	}
	slog.Error(msg, "error", err)
	return apperr.Dependency(err, msg)
}
