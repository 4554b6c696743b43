package domain

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// DefaultEmbeddingDim is the ArcFace embedding size used by the extractor.
const DefaultEmbeddingDim = 512

var ErrNoEmbeddings = errors.New("no embeddings to average")

// EncodeEmbedding serializes a float32 vector as little-endian binary,
// base64-encoded so it survives a textual database column.
func EncodeEmbedding(v []float32) string {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeEmbedding reverses EncodeEmbedding. The decoded vector must have
// exactly dim components.
func DecodeEmbedding(s string, dim int) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}
	if len(raw) != 4*dim {
		return nil, fmt.Errorf("decode embedding: got %d bytes, want %d", len(raw), 4*dim)
	}
	v := make([]float32, dim)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return v, nil
}

// NormalizeEmbedding scales a vector to unit L2 norm. Zero vectors are
// returned unchanged.
func NormalizeEmbedding(v []float32) []float32 {
	var norm float64
	for _, f := range v {
		norm += float64(f) * float64(f)
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}

// MeanEmbedding returns the arithmetic mean of the input vectors. The result
// is intentionally NOT re-normalized: the similarity threshold is calibrated
// against raw averaged embeddings.
func MeanEmbedding(vs [][]float32) ([]float32, error) {
	if len(vs) == 0 {
		return nil, ErrNoEmbeddings
	}
	dim := len(vs[0])
	sum := make([]float64, dim)
	for _, v := range vs {
		if len(v) != dim {
			return nil, fmt.Errorf("mean embedding: dimension mismatch %d != %d", len(v), dim)
		}
		for i, f := range v {
			sum[i] += float64(f)
		}
	}
	mean := make([]float32, dim)
	n := float64(len(vs))
	for i, s := range sum {
		mean[i] = float32(s / n)
	}
	return mean, nil
}
