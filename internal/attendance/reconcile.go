package attendance

import (
	"github.com/campus-ease/presence/internal/domain"
)

// Reconcile turns per-face match decisions into a complete present/absent
// list for the session roster. Every roster member appears in the output
// exactly once:
//
//   - a decision matching a roster member marks them present with the
//     reported confidence; when several faces match the same member, the
//     highest confidence wins
//   - decisions matching identities outside the roster are ignored
//   - everyone else is absent with confidence 0
//
// Output order follows the roster order.
func Reconcile(decisions []domain.MatchDecision, roster []domain.RosterMember) []domain.AttendanceOutcome {
	byUserID := make(map[string]int, len(roster))
	for i, m := range roster {
		byUserID[m.UserID] = i
	}

	present := make(map[string]float64, len(decisions))
	for _, d := range decisions {
		if !d.Matched() || d.RosterID == "" {
			continue
		}
		if _, ok := byUserID[d.RosterID]; !ok {
			// enrolled but not expected in this session
			continue
		}
		if conf, seen := present[d.RosterID]; !seen || d.Confidence > conf {
			present[d.RosterID] = d.Confidence
		}
	}

	outcomes := make([]domain.AttendanceOutcome, 0, len(roster))
	for _, m := range roster {
		outcome := domain.AttendanceOutcome{
			UserID:      m.UserID,
			StudentName: m.FullName(),
			Status:      domain.StatusAbsent,
		}
		if conf, ok := present[m.UserID]; ok {
			outcome.Status = domain.StatusPresent
			outcome.Confidence = conf
			outcome.Detected = true
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// CountPresent returns how many outcomes are marked present
func CountPresent(outcomes []domain.AttendanceOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == domain.StatusPresent {
			n++
		}
	}
	return n
}
