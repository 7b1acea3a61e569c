package roster

import "sort"

// =============================================================================
// CANDIDATE RANKER
// =============================================================================

// RankCandidates totally orders eligible employees for a shift type:
// primary key is the preference weight for the shift (prefer before neutral
// before avoid), secondary key is remaining hours (employees further from
// their target first). Equal-key entries keep their relative input order,
// which generation and tests rely on for reproducibility.
//
// Callers filter for absence before ranking; the ranker never consults the
// calendar.
func RankCandidates(shift ShiftType, eligible []Employee, ledger *HourLedger) []Employee {
	ranked := make([]Employee, len(eligible))
	copy(ranked, eligible)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := ranked[i].PreferenceFor(shift), ranked[j].PreferenceFor(shift)
		if pi != pj {
			return pi > pj
		}
		return ledger.Remaining(ranked[i].ID).GreaterThan(ledger.Remaining(ranked[j].ID))
	})

	return ranked
}
