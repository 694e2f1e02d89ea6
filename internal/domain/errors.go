package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrClientInactive      = errors.New("api client is inactive")
	ErrRunNotFound         = errors.New("validation run not found")
	ErrBatchNotFound       = errors.New("batch not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyBatch          = errors.New("batch contains no records")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrUnknownRule         = errors.New("unknown validation rule")
	ErrDuplicateRule       = errors.New("validation rule already registered")
	ErrInvalidRecord       = errors.New("record could not be read")
	ErrValidationAborted   = errors.New("validation aborted by a rule execution error")
)
