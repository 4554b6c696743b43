package insight

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/campus-ease/presence/internal/domain"
	"github.com/campus-ease/presence/internal/provider"
)

// Provider implements provider.Extractor over the InsightFace sidecar
type Provider struct {
	client   *Client
	maxFaces int
}

// New creates an extractor backed by the HTTP sidecar
func New(config Config, maxFaces int) *Provider {
	return &Provider{
		client:   NewClient(config),
		maxFaces: maxFaces,
	}
}

// Encode returns the largest detected face, mirroring single-subject
// enrollment photos
func (p *Provider) Encode(ctx context.Context, image []byte) (*provider.Face, error) {
	faces, err := p.EncodeAll(ctx, image)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	primary := &faces[0]
	for i := 1; i < len(faces); i++ {
		if faces[i].BoundingBox.Area() > primary.BoundingBox.Area() {
			primary = &faces[i]
		}
	}
	return primary, nil
}

// EncodeAll extracts every face in the image
func (p *Provider) EncodeAll(ctx context.Context, image []byte) ([]provider.Face, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidImage
	}

	resp, err := p.client.Extract(ctx, base64.StdEncoding.EncodeToString(image), p.maxFaces)
	if err != nil {
		if errors.Is(err, ErrExtractorUnavailable) {
			return nil, domain.ErrExtractorUnavailable.WithError(err)
		}
		return nil, fmt.Errorf("extract faces: %w", err)
	}

	faces := make([]provider.Face, 0, len(resp.Faces))
	for _, f := range resp.Faces {
		if len(f.Embedding) == 0 || len(f.BBox) != 4 {
			continue
		}
		faces = append(faces, provider.Face{
			// re-normalized locally, the sidecar response is not trusted
			Embedding: domain.NormalizeEmbedding(f.Embedding),
			BoundingBox: domain.BoundingBox{
				X1: f.BBox[0],
				Y1: f.BBox[1],
				X2: f.BBox[2],
				Y2: f.BBox[3],
			},
			DetectionScore: f.DetScore,
		})
	}

	return faces, nil
}

var _ provider.Extractor = (*Provider)(nil)
