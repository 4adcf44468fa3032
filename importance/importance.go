// Package importance estimates per-feature predictive value by measuring
// how much accuracy degrades when a feature's column is randomly
// permuted, holding every other column fixed.
package importance

import (
	"context"
	"math/rand"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/balsaforest/balsa"
)

// Scorer classifies a batch of points. Satisfied structurally by
// ensemble.Classifier.
type Scorer[F balsa.Float] interface {
	Classify(ctx context.Context, data []F) ([]balsa.Label, error)
}

func accuracy[F balsa.Float](ctx context.Context, scorer Scorer[F], data []F, labels []balsa.Label) (float64, error) {
	predictions, err := scorer.Classify(ctx, data)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i, p := range predictions {
		if p == labels[i] {
			correct++
		}
	}
	if len(labels) == 0 {
		return 0, nil
	}
	return float64(correct) / float64(len(labels)), nil
}

// Compute returns one importance score per feature: the baseline accuracy
// of scorer over data minus the mean accuracy across repeats independent
// shuffles of that feature's column. Features are scored in parallel
// across up to workers goroutines; shuffles never interleave within a
// single feature's repeats.
func Compute[F balsa.Float](ctx context.Context, scorer Scorer[F], data []F, featureCount int, labels []balsa.Label, repeats int, seeds *balsa.MasterSeedSequence, workers int) ([]float64, error) {
	if repeats <= 0 {
		return nil, balsa.NewClientErrorf("importance: repeat count must be positive, got %d", repeats)
	}
	if featureCount <= 0 || len(data)%featureCount != 0 {
		return nil, balsa.NewClientErrorf("importance: data length %d is not a multiple of feature count %d", len(data), featureCount)
	}
	pointCount := len(data) / featureCount
	if pointCount != len(labels) {
		return nil, balsa.NewClientErrorf("importance: %d points but %d labels", pointCount, len(labels))
	}
	if seeds == nil {
		return nil, balsa.NewClientErrorf("importance: a master seed sequence is required")
	}

	baseline, err := accuracy(ctx, scorer, data, labels)
	if err != nil {
		return nil, err
	}

	if workers < 1 {
		workers = 1
	}

	importances := make([]float64, featureCount)
	sem := make(chan struct{}, workers)
	g, gctx := errgroup.WithContext(ctx)

	for f := 0; f < featureCount; f++ {
		f := f
		seed := seeds.NextSeed()
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			return nil, g.Wait()
		}
		g.Go(func() error {
			defer func() { <-sem }()

			rng := rand.New(rand.NewSource(seed))
			column := make([]F, pointCount)
			for p := 0; p < pointCount; p++ {
				column[p] = data[p*featureCount+f]
			}
			shuffled := make([]F, pointCount)
			perturbed := make([]F, len(data))
			copy(perturbed, data)

			accuracies := make([]float64, repeats)
			for r := 0; r < repeats; r++ {
				copy(shuffled, column)
				rng.Shuffle(pointCount, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
				for p := 0; p < pointCount; p++ {
					perturbed[p*featureCount+f] = shuffled[p]
				}
				a, err := accuracy(gctx, scorer, perturbed, labels)
				if err != nil {
					return err
				}
				accuracies[r] = a
			}
			mean, err := stats.Mean(stats.Float64Data(accuracies))
			if err != nil {
				return balsa.NewSupplierError("importance: averaging repeats", err)
			}
			importances[f] = baseline - mean
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return importances, nil
}
