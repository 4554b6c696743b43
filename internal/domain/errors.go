package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 422,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected in the image",
		StatusCode: 422,
	}

	ErrNoUsableFaceData = &AppError{
		Code:       "NO_USABLE_FACE_DATA",
		Message:    "None of the submitted images yielded a usable face",
		StatusCode: 422,
	}

	ErrPersonNotFound = &AppError{
		Code:       "PERSON_NOT_FOUND",
		Message:    "Person not found",
		StatusCode: 404,
	}

	ErrPersonExists = &AppError{
		Code:       "PERSON_ALREADY_EXISTS",
		Message:    "A person with this roster id already exists",
		StatusCode: 409,
	}

	ErrEmptyGallery = &AppError{
		Code:       "EMPTY_GALLERY",
		Message:    "No enrolled faces to match against",
		StatusCode: 422,
	}

	ErrRosterNotFound = &AppError{
		Code:       "ROSTER_NOT_FOUND",
		Message:    "No roster found for the requested class",
		StatusCode: 404,
	}

	ErrExtractorUnavailable = &AppError{
		Code:       "EXTRACTOR_UNAVAILABLE",
		Message:    "Face embedding service unavailable",
		StatusCode: 502,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Rate limit exceeded, please try again later",
		StatusCode: 429,
	}
)
