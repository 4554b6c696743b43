package main

import (
	"crypto/sha256"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/campus-ease/presence/internal/domain"
)

// gen_embedding.go - Utility to generate a deterministic base64 embedding
// for seeding persons rows in development.
//
// Usage:
//   go run scripts/gen_embedding.go <seed> [dim]
//
// Example:
//   go run scripts/gen_embedding.go S12345 512

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/gen_embedding.go <seed> [dim]")
		os.Exit(1)
	}

	seed := os.Args[1]
	dim := 512
	if len(os.Args) > 2 {
		v, err := strconv.Atoi(os.Args[2])
		if err != nil || v <= 0 {
			fmt.Fprintf(os.Stderr, "invalid dim: %s\n", os.Args[2])
			os.Exit(1)
		}
		dim = v
	}

	hash := sha256.Sum256([]byte(seed))
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = float32(hash[i%len(hash)])/255.0*2 - 1
	}
	vec = domain.NormalizeEmbedding(vec)

	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}

	fmt.Printf("Seed:      %s\n", seed)
	fmt.Printf("Dimension: %d\n", dim)
	fmt.Printf("Norm:      %.6f\n", math.Sqrt(norm))
	fmt.Printf("Embedding: %s\n", domain.EncodeEmbedding(vec))
}
