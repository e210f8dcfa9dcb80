package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

// validationError converts validator output into a typed error listing each failed field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		return appErrors.WithDetails(appErrors.ErrValidation, "invalid request payload", details)
	}
	return appErrors.Clone(appErrors.ErrValidation, err.Error())
}

// storeError maps repository failures onto typed errors.
func storeError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, what+" not found")
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load "+what)
}

// upstreamError marks a failed backend step unless it already carries a typed error.
func upstreamError(err error, step string) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, step+" failed")
}
