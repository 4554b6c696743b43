package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/campus-ease/presence/internal/domain"
	"github.com/campus-ease/presence/internal/provider"
)

// Provider implements provider.Extractor for tests and local development.
// Embeddings are deterministic: the same image always produces the same
// vector, so two uploads of one photo match each other.
type Provider struct {
	dim int
}

// New creates a mock extractor producing embeddings of the given dimension
func New(dim int) *Provider {
	return &Provider{dim: dim}
}

// Encode returns a single deterministic face derived from the image hash
func (p *Provider) Encode(ctx context.Context, image []byte) (*provider.Face, error) {
	faces, err := p.EncodeAll(ctx, image)
	if err != nil {
		return nil, err
	}
	return &faces[0], nil
}

// EncodeAll simulates detection of one face per image
func (p *Provider) EncodeAll(ctx context.Context, image []byte) ([]provider.Face, error) {
	if len(image) < 100 {
		return nil, domain.ErrInvalidImage
	}

	return []provider.Face{
		{
			Embedding: p.generateEmbedding(image),
			BoundingBox: domain.BoundingBox{
				X1: 10, Y1: 10, X2: 110, Y2: 110,
			},
			DetectionScore: 0.99,
		},
	}, nil
}

// generateEmbedding derives a unit-norm vector from the image hash
func (p *Provider) generateEmbedding(image []byte) []float32 {
	hash := sha256.Sum256(image)
	embedding := make([]float32, p.dim)
	hashLen := len(hash)

	for i := 0; i < p.dim; i++ {
		idx := i % hashLen
		embedding[i] = float32(hash[idx])/255.0*2 - 1
	}

	var norm float64
	for _, v := range embedding {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] = float32(float64(embedding[i]) / norm)
	}

	return embedding
}

var _ provider.Extractor = (*Provider)(nil)
