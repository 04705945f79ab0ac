package cmd

import (
	"github.com/spf13/cobra"

	"github.com/parkinsense/symptom-engine/internal/app"
	"github.com/parkinsense/symptom-engine/internal/scoring"
)

var (
	voiceTranscript string
	voiceWordCount  int
	voiceScheme     string
)

// voiceCmd represents the voice command
var voiceCmd = &cobra.Command{
	Use:   "voice [flags] <file.wav...>",
	Short: "Score voice recordings for impairment",
	Long: `Score one or more WAV recordings of the target phrase
("the quick brown fox jumps over the lazy dog") for voice impairment.

The transcript comes from whatever recognizer transcribed the
recording; without one the capture is scored as unintelligible and a
retake is recommended. Multiple files produce per-file results plus
aggregate statistics.

Examples:
  # Score a single recording
  symptom-engine voice reading.wav --transcript "the quick brown fox jumps over the lazy dog"

  # Score a session of readings and aggregate
  symptom-engine voice take1.wav take2.wav take3.wav -t "..." -o json

  # Use the acoustic scoring scheme
  symptom-engine voice reading.wav -t "..." --scheme acoustic`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVoice,
}

func init() {
	voiceCmd.Flags().StringVarP(&voiceTranscript, "transcript", "t", "",
		"what the recognizer heard in the recording")
	voiceCmd.Flags().IntVar(&voiceWordCount, "word-count", 0,
		"recognized word count when no transcript is available")
	voiceCmd.Flags().StringVar(&voiceScheme, "scheme", "",
		"scoring scheme (severity, acoustic)")

	rootCmd.AddCommand(voiceCmd)
}

func runVoice(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(&app.Context{
		ConfigFile:   configFile,
		OutputFile:   outputFile,
		OutputFormat: outputFormat,
		Scheme:       voiceScheme,
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
		result, err := orchestrator.AnalyzeVoiceFile(args[0], voiceTranscript, voiceWordCount)
		if err != nil {
			return err
		}
		return application.Output(result)
	}

	batch, err := orchestrator.AnalyzeVoiceFiles(args, voiceTranscript, voiceWordCount)
	if err != nil {
		return err
	}
	return application.Output(batch)
}
