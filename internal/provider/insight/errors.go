package insight

import "errors"

var (
	ErrExtractorUnavailable = errors.New("embedding extractor unavailable")
	ErrInvalidResponse      = errors.New("invalid response from extractor")
)
