package apperrors

import "net/http"

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// DataError wraps a query or mutation failure from the store. Callers get a
// generic message; the wrapped error stays available for diagnostics.
func DataError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database", "Operation failed", http.StatusInternalServerError)
}

// StorageError wraps an object storage failure.
func StorageError(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "File operation failed", http.StatusInternalServerError)
}

// Predefined errors for frequent static cases.

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"This email is already registered. Please login instead.",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 6 characters",
	http.StatusBadRequest,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"auth",
	"Invalid role for this operation",
	http.StatusBadRequest,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrNotGigOwner = New(
	CodeForbidden,
	"gigs",
	"Only the owning provider may modify this gig",
	http.StatusForbidden,
)

var ErrInvalidBudget = New(
	CodeValidationFailed,
	"gigs",
	"Budget must be a non-negative number",
	http.StatusBadRequest,
)

var ErrDeleteNotConfirmed = New(
	CodeInvalidOperation,
	"gigs",
	"Deletion requires explicit confirmation",
	http.StatusBadRequest,
)
