package spool

import (
	"github.com/danpasecinic/spool/internal/errs"
)

type Error = errs.Error

type ErrorCode = errs.Code

const (
	ErrCodeUnknown                = errs.CodeUnknown
	ErrCodeMissingName            = errs.CodeMissingName
	ErrCodeInvalidIdentifier      = errs.CodeInvalidIdentifier
	ErrCodeDuplicateRegistration  = errs.CodeDuplicateRegistration
	ErrCodeDuplicateContainerName = errs.CodeDuplicateContainerName
	ErrCodeUnknownLifetime        = errs.CodeUnknownLifetime
	ErrCodeUnknownVisibility      = errs.CodeUnknownVisibility
	ErrCodeNotAFunction           = errs.CodeNotAFunction
	ErrCodeInvalidConstructor     = errs.CodeInvalidConstructor
	ErrCodeUnknownIdentifier      = errs.CodeUnknownIdentifier
	ErrCodeNotVisible             = errs.CodeNotVisible
	ErrCodeCircularDependency     = errs.CodeCircularDependency
	ErrCodeFactoryFailed          = errs.CodeFactoryFailed
	ErrCodeTypeMismatch           = errs.CodeTypeMismatch
	ErrCodeDisposeFailed          = errs.CodeDisposeFailed
	ErrCodeValidationFailed       = errs.CodeValidationFailed
)

func IsMissingName(err error) bool {
	return errs.HasCode(err, ErrCodeMissingName)
}

func IsInvalidIdentifier(err error) bool {
	return errs.HasCode(err, ErrCodeInvalidIdentifier)
}

func IsDuplicateRegistration(err error) bool {
	return errs.HasCode(err, ErrCodeDuplicateRegistration)
}

func IsDuplicateContainerName(err error) bool {
	return errs.HasCode(err, ErrCodeDuplicateContainerName)
}

func IsUnknownLifetime(err error) bool {
	return errs.HasCode(err, ErrCodeUnknownLifetime)
}

func IsUnknownVisibility(err error) bool {
	return errs.HasCode(err, ErrCodeUnknownVisibility)
}

func IsNotAFunction(err error) bool {
	return errs.HasCode(err, ErrCodeNotAFunction)
}

func IsInvalidConstructor(err error) bool {
	return errs.HasCode(err, ErrCodeInvalidConstructor)
}

// IsUnknownIdentifier also matches missing parent modules and dotted paths
// that walk through a non-module.
func IsUnknownIdentifier(err error) bool {
	return errs.HasCode(err, ErrCodeUnknownIdentifier)
}

func IsNotVisible(err error) bool {
	return errs.HasCode(err, ErrCodeNotVisible)
}

func IsCircularDependency(err error) bool {
	return errs.HasCode(err, ErrCodeCircularDependency)
}

func IsFactoryFailed(err error) bool {
	return errs.HasCode(err, ErrCodeFactoryFailed)
}

func IsTypeMismatch(err error) bool {
	return errs.HasCode(err, ErrCodeTypeMismatch)
}

func IsDisposeFailed(err error) bool {
	return errs.HasCode(err, ErrCodeDisposeFailed)
}

func IsValidationFailed(err error) bool {
	return errs.HasCode(err, ErrCodeValidationFailed)
}
