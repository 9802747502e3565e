// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
)

// Service errors. Validation sentinels wrap ErrValidation so the
// transport layer can map the whole family to a single status.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidation = errors.New("validation failed")

	ErrInvalidEMail       = fmt.Errorf("%w: invalid eMail address", ErrValidation)
	ErrPasswordRequired   = fmt.Errorf("%w: password is required", ErrValidation)
	ErrEMailExists        = fmt.Errorf("%w: eMail already exists", ErrValidation)
	ErrNameRequired       = fmt.Errorf("%w: name is required", ErrValidation)
	ErrTypeRequired       = fmt.Errorf("%w: type is required", ErrValidation)
	ErrInvalidCountry     = fmt.Errorf("%w: country must be a two-letter uppercase code", ErrValidation)
	ErrInvalidInputType   = fmt.Errorf("%w: invalid question input type", ErrValidation)
	ErrInvalidTemplateFor = fmt.Errorf("%w: for must be entity or transaction", ErrValidation)
	ErrFilenameRequired   = fmt.Errorf("%w: filename is required", ErrValidation)
	ErrOwnerRequired      = fmt.Errorf("%w: belongsToId is required", ErrValidation)
	ErrEmptyFile          = fmt.Errorf("%w: file is empty", ErrValidation)
)
