package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/logging"
	"github.com/msfrag/fragid/pipeline"
	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/spectrum"
	"github.com/msfrag/fragid/workspace"
)

var (
	profilePath   string
	ionTypeName   string
	workspaceRoot string
	topK          int
	recalibrating bool
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file.ms...]",
	Short: "Identify fragmentation trees for one or more .ms experiment files",
	Long: `identify reads one or more ".ms" experiment files, runs the
identification pipeline against each, and writes the resulting trees,
summaries, and run record into --workspace.

Examples:
  # Identify a single experiment under the default qtof profile
  fragid identify --workspace ./runs ms/exp1.ms

  # Use a custom profile and keep the top 5 candidates with recalibration
  fragid identify --profile profiles/orbitrap/profile.yaml --k 5 --recalibrate --workspace ./runs ms/exp1.ms ms/exp2.ms`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdentify,
}

func init() {
	identifyCmd.Flags().StringVar(&profilePath, "profile", "", "Path to a profile.yaml (default profile.Default() when unset)")
	identifyCmd.Flags().StringVar(&ionTypeName, "ion-type", "[M+H]+", "Precursor ion type: [M+H]+, [M-H]-, [M]+, or [M]-")
	identifyCmd.Flags().StringVar(&workspaceRoot, "workspace", "./fragid-workspace", "Workspace root directory for output")
	identifyCmd.Flags().IntVar(&topK, "k", 10, "Maximum number of candidates to return per experiment")
	identifyCmd.Flags().BoolVar(&recalibrating, "recalibrate", false, "Run a second pass after median-slope mass recalibration")
}

func runIdentify(cmd *cobra.Command, args []string) error {
	log, err := logging.NewProduction()
	if err != nil {
		return fmt.Errorf("fragid: building logger: %w", err)
	}
	defer log.Sync()

	prof := profile.Default()
	if profilePath != "" {
		prof, err = profile.Load(profilePath)
		if err != nil {
			return fmt.Errorf("fragid: loading profile: %w", err)
		}
	}

	ionType, err := ioniz.Parse(ionTypeName)
	if err != nil {
		return fmt.Errorf("fragid: parsing --ion-type: %w", err)
	}

	w, err := workspace.NewWriter(workspaceRoot)
	if err != nil {
		return fmt.Errorf("fragid: opening workspace: %w", err)
	}

	idx, err := workspace.OpenRunIndex(workspace.NewLayout(workspaceRoot).RunDBPath())
	if err != nil {
		return fmt.Errorf("fragid: opening run index: %w", err)
	}
	defer idx.Close()

	opts := pipeline.Options{K: topK, Recalibrating: recalibrating, Logger: log}

	invalidInput := false
	for _, path := range args {
		exp, err := spectrum.ReadMSFile(path)
		if err != nil {
			log.Errorw("fragid: skipping unparsable experiment", "path", path, "error", err)
			invalidInput = true

			continue
		}

		started := time.Now()
		results, err := pipeline.Identify(exp, prof, ionType, opts)
		finished := time.Now()
		if err != nil {
			log.Errorw("fragid: identification failed", "experiment_id", exp.ID, "error", err)
			invalidInput = true

			continue
		}

		if err := w.WriteExperiment(exp); err != nil {
			return fmt.Errorf("fragid: writing experiment %s: %w", exp.ID, err)
		}
		if len(results) > 0 {
			if err := w.WriteRun(exp.ID, results); err != nil {
				return fmt.Errorf("fragid: writing run %s: %w", exp.ID, err)
			}
		}
		if _, err := idx.RecordRun(exp.ID, started, finished, results); err != nil {
			return fmt.Errorf("fragid: recording run %s: %w", exp.ID, err)
		}

		log.Infow("fragid: identified experiment", "experiment_id", exp.ID, "candidates", len(results))
	}

	if invalidInput {
		return fmt.Errorf("fragid: one or more experiments failed to parse or identify")
	}

	return nil
}
