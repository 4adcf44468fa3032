// Package ensemble runs a forest of flat classifiers against a batch of
// points and combines their votes into a single prediction per point.
package ensemble

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/tree"
)

// TreeStream yields the trees of a forest one at a time. Next returns
// (nil, nil) once the stream is exhausted. Rewind must return the stream
// to its first tree so a classifier can be reused across many
// ClassifyAndVote calls.
type TreeStream[F balsa.Float] interface {
	ClassCount() int
	FeatureCount() int
	Rewind() error
	Next() (*tree.FlatClassifier[F], error)
}

// Classifier runs a stream of trees against a batch of points, inline when
// workers is 0, otherwise with workers goroutines consuming trees
// concurrently, each into its own vote table.
type Classifier[F balsa.Float] struct {
	stream       TreeStream[F]
	workers      int
	classWeights []float64
}

// New creates a Classifier over stream. classWeights, if non-nil, must
// have one non-negative entry per class; nil means every class is
// weighted equally.
func New[F balsa.Float](stream TreeStream[F], workers int, classWeights []float64) (*Classifier[F], error) {
	classCount := stream.ClassCount()
	if classWeights == nil {
		classWeights = make([]float64, classCount)
		for i := range classWeights {
			classWeights[i] = 1.0
		}
	}
	if len(classWeights) != classCount {
		return nil, balsa.NewClientErrorf("ensemble: %d class weights given, want %d", len(classWeights), classCount)
	}
	for _, w := range classWeights {
		if w < 0 {
			return nil, balsa.NewClientErrorf("ensemble: negative class weight %v", w)
		}
	}
	if workers < 0 {
		workers = 0
	}
	return &Classifier[F]{stream: stream, workers: workers, classWeights: classWeights}, nil
}

// ClassifyAndVote runs every tree in the stream against data, a row-major
// pointCount x FeatureCount() matrix, and returns the accumulated
// pointCount x ClassCount() vote table.
func (c *Classifier[F]) ClassifyAndVote(ctx context.Context, data []F) (*balsa.VoteTable, error) {
	featureCount := c.stream.FeatureCount()
	if featureCount == 0 || len(data)%featureCount != 0 {
		return nil, balsa.NewClientErrorf("ensemble: data length %d is not a multiple of feature count %d", len(data), featureCount)
	}
	pointCount := len(data) / featureCount

	if err := c.stream.Rewind(); err != nil {
		return nil, balsa.NewSupplierError("ensemble: rewinding tree stream", err)
	}

	votes := balsa.NewVoteTable(pointCount, c.stream.ClassCount())

	if pointCount == 0 {
		return votes, nil
	}

	if c.workers == 0 {
		points := make([]balsa.DataPointID, pointCount)
		for {
			clf, err := c.stream.Next()
			if err != nil {
				return nil, balsa.NewSupplierError("ensemble: reading tree stream", err)
			}
			if clf == nil {
				break
			}
			for i := range points {
				points[i] = balsa.DataPointID(i)
			}
			clf.ClassifyAndVote(data, points, votes)
		}
		return votes, nil
	}

	jobs := make(chan *tree.FlatClassifier[F])
	workerVotes := make([]*balsa.VoteTable, c.workers)
	for w := range workerVotes {
		workerVotes[w] = balsa.NewVoteTable(pointCount, c.stream.ClassCount())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for {
			clf, err := c.stream.Next()
			if err != nil {
				return balsa.NewSupplierError("ensemble: reading tree stream", err)
			}
			if clf == nil {
				return nil
			}
			select {
			case jobs <- clf:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	for w := 0; w < c.workers; w++ {
		w := w
		g.Go(func() error {
			points := make([]balsa.DataPointID, pointCount)
			for clf := range jobs {
				for i := range points {
					points[i] = balsa.DataPointID(i)
				}
				clf.ClassifyAndVote(data, points, workerVotes[w])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, wv := range workerVotes {
		votes.Add(wv)
	}
	return votes, nil
}

// Classify runs ClassifyAndVote and reduces each point's row to its
// highest weighted-vote class, the lowest class index winning ties.
func (c *Classifier[F]) Classify(ctx context.Context, data []F) ([]balsa.Label, error) {
	votes, err := c.ClassifyAndVote(ctx, data)
	if err != nil {
		return nil, err
	}
	out := make([]balsa.Label, votes.Rows())
	for p := 0; p < votes.Rows(); p++ {
		out[p] = balsa.Label(votes.ColumnOfWeightedRowMaximum(p, c.classWeights))
	}
	return out, nil
}
