package domain

import (
	"time"

	"github.com/google/uuid"
)

// Person is an identity enrolled for recognition
type Person struct {
	ID                 uuid.UUID  `json:"id"`
	RosterID           string     `json:"roster_id,omitempty"` // student/employee identifier, unique when present
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	Department         string     `json:"department,omitempty"`
	Email              string     `json:"email,omitempty"`
	EmbeddingData      string     `json:"-"` // base64 fixed-width binary, see embedding.go
	TrainingImageCount int        `json:"training_image_count"`
	RecognitionEnabled bool       `json:"recognition_enabled"`
	LastTrained        *time.Time `json:"last_trained,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// BoundingBox represents the face area in the image, in pixel coordinates
type BoundingBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Area returns the box area, used to pick the primary (largest) face
func (b BoundingBox) Area() float64 {
	return (b.X2 - b.X1) * (b.Y2 - b.Y1)
}

// MatchDecision is the per-face result of matching one query embedding
// against the gallery. Confidence is 0.0 for unmatched faces; TopSimilarity
// always carries the raw best score for diagnostics.
type MatchDecision struct {
	FaceIndex      int         `json:"face_index"`
	PersonID       *uuid.UUID  `json:"person_id,omitempty"`
	PersonName     string      `json:"person_name"`
	RosterID       string      `json:"roster_id,omitempty"`
	Confidence     float64     `json:"confidence"`
	TopSimilarity  float64     `json:"top_similarity"`
	BoundingBox    BoundingBox `json:"bounding_box"`
	DetectionScore float64     `json:"detection_score"`
}

// Matched reports whether the face was identified
func (d MatchDecision) Matched() bool {
	return d.PersonID != nil
}

// RecognitionLog is the audit record of one recognition session
type RecognitionLog struct {
	ID               uuid.UUID `json:"id"`
	SessionID        uuid.UUID `json:"session_id"`
	TotalFaces       int       `json:"total_faces_detected"`
	Successful       int       `json:"successful_recognitions"`
	Failed           int       `json:"failed_recognitions"`
	ProcessingTimeMS float64   `json:"processing_time_ms"`
	Location         string    `json:"location,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
