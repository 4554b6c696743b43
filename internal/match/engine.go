package match

import (
	"github.com/campus-ease/presence/internal/domain"
	"github.com/campus-ease/presence/internal/gallery"
	"github.com/campus-ease/presence/internal/provider"
)

// UnknownName is reported for faces below the similarity threshold
const UnknownName = "Unknown"

// Match scores every query face against the full gallery snapshot and
// returns one decision per face. Both sides are unit-norm, so the dot
// product is the cosine similarity.
//
// A face matches only when its best score strictly exceeds threshold.
// Ties at the maximum resolve to the lowest gallery row index, which is
// stable across calls because the snapshot row order is fixed at refresh
// time. Faces are scored independently: two faces may match the same
// identity.
func Match(faces []provider.Face, snap *gallery.Snapshot, threshold float64) []domain.MatchDecision {
	decisions := make([]domain.MatchDecision, 0, len(faces))

	for idx, face := range faces {
		var best float64
		bestRow := -1
		if len(face.Embedding) == snap.Dim {
			best, bestRow = bestSimilarity(face.Embedding, snap)
		}

		decision := domain.MatchDecision{
			FaceIndex:      idx,
			PersonName:     UnknownName,
			TopSimilarity:  best,
			BoundingBox:    face.BoundingBox,
			DetectionScore: face.DetectionScore,
		}

		if bestRow >= 0 && best > threshold {
			entry := snap.Entries[bestRow]
			id := entry.PersonID
			decision.PersonID = &id
			decision.PersonName = entry.Name
			decision.RosterID = entry.RosterID
			decision.Confidence = best
		}

		decisions = append(decisions, decision)
	}

	return decisions
}

// bestSimilarity computes query.row for every gallery row in one pass over
// the dense matrix and returns the maximum with its row index. The row
// index is -1 for an empty snapshot.
func bestSimilarity(query []float32, snap *gallery.Snapshot) (float64, int) {
	best := 0.0
	bestRow := -1

	n := snap.Len()
	for i := 0; i < n; i++ {
		row := snap.Row(i)
		var score float64
		for j := range row {
			score += float64(row[j]) * float64(query[j])
		}
		// strict > keeps the lowest row index on exact ties
		if bestRow < 0 || score > best {
			best = score
			bestRow = i
		}
	}

	return best, bestRow
}
