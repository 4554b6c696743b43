package provider

import (
	"context"

	"github.com/campus-ease/presence/internal/domain"
)

// Extractor produces identity embeddings from raw image bytes
type Extractor interface {
	// Encode extracts the primary (largest) face from the image.
	// Returns domain.ErrNoFaceDetected when the image contains no face.
	Encode(ctx context.Context, image []byte) (*Face, error)

	// EncodeAll extracts every face found in the image, each with a
	// unit-norm embedding, bounding box and detection score.
	EncodeAll(ctx context.Context, image []byte) ([]Face, error)
}

// Face is one detected face with its identity embedding
type Face struct {
	Embedding      []float32          `json:"embedding"`
	BoundingBox    domain.BoundingBox `json:"bounding_box"`
	DetectionScore float64            `json:"detection_score"`
}
