package featureindex

import "github.com/balsaforest/balsa"

// Split identifies a decision boundary: points with Feature's value less
// than Value go left, the rest go right.
type Split[F balsa.Float] struct {
	Feature balsa.FeatureID
	Value   F
}

// Candidate is a scored split. Valid is false when no boundary in the
// scanned window produced a proper two-sided split (e.g. every entry
// carries the same value), so Split and the impurity are meaningless.
type Candidate[F balsa.Float] struct {
	Split       Split[F]
	LeftCounts  *balsa.LabelFrequencyTable
	RightCounts *balsa.LabelFrequencyTable
	Impurity    F
	Valid       bool
}

func makeCandidate[F balsa.Float](feature balsa.FeatureID, value F, left, right *balsa.LabelFrequencyTable) Candidate[F] {
	leftCount, rightCount := F(left.Total()), F(right.Total())
	leftImpurity := balsa.GiniImpurity[F](left)
	rightImpurity := balsa.GiniImpurity[F](right)
	impurity := (leftImpurity*leftCount + rightImpurity*rightCount) / (leftCount + rightCount)
	return Candidate[F]{
		Split:       Split[F]{Feature: feature, Value: value},
		LeftCounts:  left,
		RightCounts: right,
		Impurity:    impurity,
		Valid:       true,
	}
}

// FindBestSplitForFeature scans one feature's sorted entries for the split
// with the lowest weighted Gini impurity, keeping best if nothing in
// entries beats it. It walks entries left to right, evaluating the
// boundary before the currently visited point crosses onto a new value
// (so ties on a repeated value are never split apart), then moves the
// point from the right-hand counts to the left-hand counts.
func FindBestSplitForFeature[F balsa.Float](entries []Entry[F], featureID balsa.FeatureID, nodeCounts *balsa.LabelFrequencyTable, best Candidate[F]) Candidate[F] {
	if len(entries) == 0 {
		return best
	}

	left := balsa.NewLabelFrequencyTable(nodeCounts.Size())
	right := nodeCounts.Clone()

	currentBlockValue := entries[0].Value
	for _, e := range entries {
		if e.Value > currentBlockValue {
			if left.Total() > 0 && right.Total() > 0 {
				candidate := makeCandidate(featureID, e.Value, left.Clone(), right.Clone())
				if candidate.Impurity <= 1 && (!best.Valid || candidate.Impurity < best.Impurity) {
					best = candidate
				}
			}
			currentBlockValue = e.Value
		}
		right.Decrement(e.Label)
		left.Increment(e.Label)
	}
	return best
}

// FindBestSplit searches for the best split at one node, considering only
// featuresToConsider features chosen by coin without replacement. If none
// of the chosen features yields a valid split, the remaining (skipped)
// features are scanned in ascending order as a fallback, stopping at the
// first one that yields a valid split.
func FindBestSplit[F balsa.Float](idx *Index[F], nodeCounts *balsa.LabelFrequencyTable, coin *balsa.WeightedCoin, featuresToConsider int, offset, count int) (Candidate[F], bool) {
	featureCount := idx.FeatureCount()
	if featuresToConsider > featureCount {
		featuresToConsider = featureCount
	}

	var best Candidate[F]
	remainingPicks := uint(featuresToConsider)
	skipped := make([]balsa.FeatureID, 0, featureCount)

	for f := 0; f < featureCount; f++ {
		remainingItems := uint(featureCount - f)
		if coin.Flip(remainingPicks, remainingItems) {
			remainingPicks--
			best = FindBestSplitForFeature(idx.Slice(balsa.FeatureID(f), offset, count), balsa.FeatureID(f), nodeCounts, best)
		} else {
			skipped = append(skipped, balsa.FeatureID(f))
		}
	}

	if !best.Valid {
		for _, f := range skipped {
			best = FindBestSplitForFeature(idx.Slice(f, offset, count), f, nodeCounts, best)
			if best.Valid {
				break
			}
		}
	}

	return best, best.Valid
}
