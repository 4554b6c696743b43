package insight

// ExtractRequest for POST /extract
type ExtractRequest struct {
	Image    string `json:"image"`               // base64 encoded image
	MaxFaces int    `json:"max_faces,omitempty"` // 0 = sidecar default
}

// ExtractResponse from POST /extract
type ExtractResponse struct {
	Faces []ExtractedFace `json:"faces"`
}

// ExtractedFace is one face reported by the sidecar. BBox is
// [x1, y1, x2, y2] in pixel coordinates.
type ExtractedFace struct {
	Embedding []float32 `json:"embedding"`
	BBox      []float64 `json:"bbox"`
	DetScore  float64   `json:"det_score"`
}
