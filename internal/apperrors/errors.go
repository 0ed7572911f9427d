package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates that a currency code or crypto symbol could not be resolved.
var ErrNotFound = errors.New("resource not found")

// ErrProviderUnavailable indicates a transport failure or non-2xx status from an
// upstream pricing provider.
var ErrProviderUnavailable = errors.New("upstream provider unavailable")

// ErrMalformedResponse indicates a 2xx upstream response that is missing expected fields.
var ErrMalformedResponse = errors.New("malformed upstream response")
