package analysis

import (
	"sort"

	"github.com/sells-group/decision-cli/internal/model"
)

// Rescore recomputes option totals after criterion weights are edited,
// without another model call. Each criterion's weighted contribution
// (score x original weight) is scaled by editedWeight/originalWeight, so a
// doubled weight doubles that criterion's contribution. Per-criterion
// scores are left untouched; only the totals change. Restoring the
// original weights reproduces the original totals.
//
// Criteria are matched by NAME between the score entries and both weight
// lists: the model does not echo stable criterion ids back, so names are
// the only join key that survives the round trip. Two criteria sharing a
// name would be conflated. A sub-score whose criterion appears in neither
// list is added to the total unscaled.
//
// Inputs are never mutated; the returned slice is a fresh derived view.
func Rescore(scores []model.OptionScore, original, edited []model.Criterion) []model.OptionScore {
	out := make([]model.OptionScore, 0, len(scores))
	for _, s := range scores {
		var total float64
		for _, cs := range s.CriteriaScores {
			origWeight, origOK := weightByName(original, cs.CriterionName)
			editWeight, editOK := weightByName(edited, cs.CriterionName)
			if origOK && editOK {
				ratio := float64(editWeight) / float64(origWeight)
				total += float64(cs.Score) * float64(origWeight) * ratio
			} else {
				total += float64(cs.Score)
			}
		}

		rescored := s
		rescored.TotalScore = total
		rescored.CriteriaScores = append([]model.CriterionScore(nil), s.CriteriaScores...)
		out = append(out, rescored)
	}
	return out
}

// weightByName finds the first criterion with the given name and returns
// its weight clamped to [1,10]. Weights outside the documented range
// (notably zero, which would make the scaling ratio undefined) are clamped
// rather than trusted.
func weightByName(criteria []model.Criterion, name string) (int, bool) {
	for _, c := range criteria {
		if c.Name == name {
			w := c.Weight
			if w < 1 {
				w = 1
			}
			if w > 10 {
				w = 10
			}
			return w, true
		}
	}
	return 0, false
}

// RankedScore is one option's position after a (re)ranking. Delta is
// originalRank minus newRank: positive means the option moved up.
type RankedScore struct {
	model.OptionScore
	Rank  int `json:"rank"`
	Delta int `json:"delta"`
}

// Rank orders scores by total descending and computes each option's rank
// movement relative to the original score list. Ties keep their original
// relative order (stable sort). Neither input is mutated.
func Rank(scores, originalScores []model.OptionScore) []RankedScore {
	originalRank := make(map[string]int, len(originalScores))
	for i, s := range sortByTotal(originalScores) {
		originalRank[s.OptionID] = i + 1
	}

	ranked := make([]RankedScore, 0, len(scores))
	for i, s := range sortByTotal(scores) {
		rank := i + 1
		delta := 0
		if orig, ok := originalRank[s.OptionID]; ok {
			delta = orig - rank
		}
		ranked = append(ranked, RankedScore{OptionScore: s, Rank: rank, Delta: delta})
	}
	return ranked
}

func sortByTotal(scores []model.OptionScore) []model.OptionScore {
	sorted := append([]model.OptionScore(nil), scores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})
	return sorted
}
