// Command balsa-train grows a random forest classifier from a CSV
// feature matrix and label vector, writing the finished trees to a
// balsa model file.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/dotwriter"
	"github.com/balsaforest/balsa/internal/logging"
	"github.com/balsaforest/balsa/internal/stopwatch"
	"github.com/balsaforest/balsa/modelstore"
	"github.com/balsaforest/balsa/tablefile"
	"github.com/balsaforest/balsa/trainer"
	"github.com/balsaforest/balsa/tree"
)

const unlimitedDepth = 1 << 30

type trainConfig struct {
	threads      int
	maxDepth     int
	minPurity    float64
	treeCount    int
	seed         int64
	featureCount int
	dot          bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &trainConfig{}
	cmd := &cobra.Command{
		Use:   "balsa-train <data.csv> <labels.csv> <model.balsa>",
		Short: "balsa-train grows a random forest from a labeled data set",
		Long:  `Grows a random forest classifier from a CSV feature matrix and label vector, and writes the trained trees to a balsa model file.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(config, args[0], args[1], args[2])
		},
	}
	cmd.Flags().IntVarP(&config.threads, "threads", "t", 1, "number of trees to grow concurrently")
	cmd.Flags().IntVarP(&config.maxDepth, "max-depth", "d", unlimitedDepth, "maximum tree depth (defaults to unlimited)")
	cmd.Flags().Float64VarP(&config.minPurity, "min-purity", "p", 0.0, "impurity threshold below which a node is never split")
	cmd.Flags().IntVarP(&config.treeCount, "tree-count", "c", 150, "number of trees to grow")
	cmd.Flags().Int64VarP(&config.seed, "seed", "s", 0, "master random seed (0 derives one from the current time)")
	cmd.Flags().IntVarP(&config.featureCount, "features-per-split", "f", 0, "number of features to consider per split (0: floor(sqrt(feature count)))")
	cmd.Flags().BoolVarP(&config.dot, "dot", "g", false, "also write a Graphviz .dot file for each tree")
	return cmd
}

func runTrain(config *trainConfig, dataPath, labelPath, modelPath string) error {
	logger := logging.Default()
	var sw stopwatch.StopWatch

	sw.Start()
	data, points, featureCount, err := tablefile.ReadFeatureMatrix[float64](dataPath)
	if err != nil {
		return err
	}
	labels, labelCount, err := tablefile.ReadLabelVector(labelPath)
	if err != nil {
		return err
	}
	if points != labelCount {
		return balsa.NewParseErrorf("balsa-train: %d feature rows but %d labels", points, labelCount)
	}
	logger.Progress("dataset load", 0, 1)
	logger.Errorf("loaded %d points x %d features in %s", points, featureCount, sw.Stop())

	classCount := 0
	for _, l := range labels {
		if int(l)+1 > classCount {
			classCount = int(l) + 1
		}
	}

	seed := config.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out, err := modelstore.NewWriter[float64](modelPath, "balsa-train", 1, 0, 0)
	if err != nil {
		return err
	}
	defer out.Close()

	var dotOut trainer.DotFunc[float64]
	if config.dot {
		dotOut = func(i int, clf *tree.FlatClassifier[float64]) error {
			f, err := os.Create(fmt.Sprintf("%s.tree%d.dot", modelPath, i))
			if err != nil {
				return err
			}
			defer f.Close()
			return dotwriter.Write(f, clf)
		}
	}

	opts := trainer.Options{
		FeaturesToConsider: config.featureCount,
		MaxDepth:           config.maxDepth,
		TreeCount:          config.treeCount,
		ThreadCount:        config.threads,
		ImpurityThreshold:  config.minPurity,
		Seeds:              balsa.NewMasterSeedSequence(seed),
	}

	sw.Start()
	err = trainer.Train[float64](context.Background(), data, featureCount, labels, classCount, opts,
		out,
		func(i, total int) { logger.Progress("tree", i, total) },
		dotOut,
	)
	if err != nil {
		return err
	}
	logger.Errorf("grew %d trees in %s", config.treeCount, sw.Stop())
	return nil
}
