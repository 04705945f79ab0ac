package cmd

import (
	"github.com/spf13/cobra"

	"github.com/parkinsense/symptom-engine/internal/app"
	"github.com/parkinsense/symptom-engine/internal/scoring"
)

// tremorCmd represents the tremor command
var tremorCmd = &cobra.Command{
	Use:   "tremor [flags] <samples.json|csv...>",
	Short: "Score motion captures for rest tremor",
	Long: `Score one or more accelerometer captures from a ~10 second hold for
rest tremor in the parkinsonian 4-6 Hz band.

Captures are JSON ({"samples": [{"magnitude": ..., "elapsed_ms": ...}]}
or a bare array) or CSV (magnitude,elapsed_ms rows, header optional).
Multiple files produce per-file results plus aggregate statistics.

Examples:
  # Score a single capture
  symptom-engine tremor hold.json

  # Score a session of holds and aggregate
  symptom-engine tremor morning.csv midday.csv evening.csv -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTremor,
}

func init() {
	rootCmd.AddCommand(tremorCmd)
}

func runTremor(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(&app.Context{
		ConfigFile:   configFile,
		OutputFile:   outputFile,
		OutputFormat: outputFormat,
		Verbose:      verbose,
		Quiet:        quiet,
	})
	if err != nil {
		return err
	}

	orchestrator, err := scoring.NewOrchestrator(application.Config(), application.Logger())
	if err != nil {
		return err
	}

	if len(args) == 1 {
		samples, err := scoring.LoadTremorSamples(args[0])
		if err != nil {
			return err
		}
		return application.Output(orchestrator.AnalyzeTremorSamples(samples))
	}

	batch, err := orchestrator.AnalyzeTremorFiles(args)
	if err != nil {
		return err
	}
	return application.Output(batch)
}
