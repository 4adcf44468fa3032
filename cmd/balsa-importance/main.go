// Command balsa-importance scores each feature of a trained random
// forest by how much held-out accuracy degrades when that feature's
// column is randomly permuted.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/ensemble"
	"github.com/balsaforest/balsa/importance"
	"github.com/balsaforest/balsa/internal/logging"
	"github.com/balsaforest/balsa/internal/stopwatch"
	"github.com/balsaforest/balsa/modelstore"
	"github.com/balsaforest/balsa/tablefile"
)

type importanceConfig struct {
	threads int
	repeats int
	seed    int64
}

func main() {
	if err := cliParser().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &importanceConfig{}
	cmd := &cobra.Command{
		Use:   "balsa-importance <model.balsa> <data.csv> <labels.csv>",
		Short: "balsa-importance scores feature importance by permutation",
		Long:  `Scores every feature of a trained forest by the drop in accuracy caused by randomly shuffling that feature's column.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportance(config, args[0], args[1], args[2])
		},
	}
	cmd.Flags().IntVarP(&config.threads, "threads", "t", 1, "number of features to score concurrently")
	cmd.Flags().IntVarP(&config.repeats, "repeats", "r", 10, "number of independent shuffles averaged per feature")
	cmd.Flags().Int64VarP(&config.seed, "seed", "s", 1, "master random seed for the permutation shuffles")
	return cmd
}

func runImportance(config *importanceConfig, modelPath, dataPath, labelPath string) error {
	logger := logging.Default()
	var sw stopwatch.StopWatch

	reader, err := modelstore.NewReader[float64](modelPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	data, points, featureCount, err := tablefile.ReadFeatureMatrix[float64](dataPath)
	if err != nil {
		return err
	}
	if featureCount != reader.FeatureCount() {
		return balsa.NewParseErrorf("balsa-importance: data has %d features, model expects %d", featureCount, reader.FeatureCount())
	}
	labels, labelCount, err := tablefile.ReadLabelVector(labelPath)
	if err != nil {
		return err
	}
	if points != labelCount {
		return balsa.NewParseErrorf("balsa-importance: %d feature rows but %d labels", points, labelCount)
	}

	scorer, err := ensemble.New[float64](reader, config.threads, nil)
	if err != nil {
		return err
	}

	sw.Start()
	scores, err := importance.Compute[float64](context.Background(), scorer, data, featureCount, labels, config.repeats, balsa.NewMasterSeedSequence(config.seed), config.threads)
	if err != nil {
		return err
	}
	logger.Errorf("scored %d features in %s", featureCount, sw.Stop())

	for f, score := range scores {
		fmt.Printf("%d\t%v\n", f, score)
	}
	return nil
}
