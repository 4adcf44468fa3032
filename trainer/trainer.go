// Package trainer grows a forest of indexed decision trees in parallel
// and streams the finished, flat classifiers out in a fixed, deterministic
// order.
package trainer

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/featureindex"
	"github.com/balsaforest/balsa/tree"
)

// Options controls a training run.
type Options struct {
	// FeaturesToConsider is the number of features sampled at each node.
	// Zero means floor(sqrt(featureCount)).
	FeaturesToConsider int
	MaxDepth           int
	TreeCount          int
	ThreadCount        int
	ImpurityThreshold  float64
	Seeds              *balsa.MasterSeedSequence
}

// OutputStream receives finished classifiers, one at a time, in the order
// trees are indexed. Satisfied structurally by modelstore.Writer.
type OutputStream[F balsa.Float] interface {
	Write(*tree.FlatClassifier[F]) error
}

// ProgressFunc is invoked once per completed tree, in write order.
type ProgressFunc func(treeIndex, treeCount int)

// DotFunc is invoked once per completed tree, in write order, to allow
// emitting a Graphviz rendering alongside the model file.
type DotFunc[F balsa.Float] func(treeIndex int, clf *tree.FlatClassifier[F]) error

// Train grows opts.TreeCount trees over the given feature matrix and
// labels, writing each finished tree to out in tree-index order once all
// trees have finished growing. Trees are grown across up to
// opts.ThreadCount goroutines; a value of 0 or 1 grows trees serially.
func Train[F balsa.Float](ctx context.Context, data []F, featureCount int, labels []balsa.Label, classCount int, opts Options, out OutputStream[F], progress ProgressFunc, dotOut DotFunc[F]) error {
	if opts.TreeCount <= 0 {
		return balsa.NewClientErrorf("trainer: tree count must be positive, got %d", opts.TreeCount)
	}
	if opts.Seeds == nil {
		return balsa.NewClientErrorf("trainer: a master seed sequence is required")
	}

	featuresToConsider := opts.FeaturesToConsider
	if featuresToConsider == 0 {
		featuresToConsider = int(math.Sqrt(float64(featureCount)))
		if featuresToConsider < 1 {
			featuresToConsider = 1
		}
	}

	prototype, err := featureindex.Build(data, len(labels), featureCount, labels)
	if err != nil {
		return err
	}

	threads := opts.ThreadCount
	if threads < 1 {
		threads = 1
	}

	results := make([]*tree.FlatClassifier[F], opts.TreeCount)
	sem := make(chan struct{}, threads)
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < opts.TreeCount; i++ {
		i := i
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			return g.Wait()
		}
		g.Go(func() error {
			defer func() { <-sem }()

			seed := opts.Seeds.NextSeed()
			coin := balsa.NewWeightedCoin(seed)
			idx := prototype.Clone()

			t, err := tree.New(data, featureCount, idx, classCount, featuresToConsider, opts.MaxDepth, opts.ImpurityThreshold, coin)
			if err != nil {
				return err
			}
			t.Grow()
			results[i] = t.ToFlatClassifier()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, clf := range results {
		if err := out.Write(clf); err != nil {
			return balsa.NewSupplierError("trainer: writing classifier", err)
		}
		if dotOut != nil {
			if err := dotOut(i, clf); err != nil {
				return balsa.NewSupplierError("trainer: writing dot file", err)
			}
		}
		if progress != nil {
			progress(i, opts.TreeCount)
		}
	}
	return nil
}
