package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parkinsense/symptom-engine/internal/app"
	"github.com/parkinsense/symptom-engine/internal/scoring"
)

// wavTestCmd represents the wav-test command
var wavTestCmd = &cobra.Command{
	Use:   "wav-test <file.wav...>",
	Short: "Decode diagnostics for WAV captures",
	Long: `Decode WAV files and report what the voice analyzer would see:
container parameters, duration, signal levels, and the detected speech
segments. Nothing is scored.

Examples:
  symptom-engine wav-test reading.wav
  symptom-engine wav-test take*.wav`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWAVTest,
}

func init() {
	rootCmd.AddCommand(wavTestCmd)
}

func runWAVTest(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(&app.Context{
		ConfigFile:   configFile,
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

	fmt.Println("WAV CAPTURE DIAGNOSTICS")
	fmt.Println("=======================")

	for _, path := range args {
		probe, err := orchestrator.ProbeFile(path)
		if err != nil {
			return fmt.Errorf("%s%s: %v%s", ColorRed, path, err, ColorReset)
		}

		fmt.Printf("\n%s%s%s\n", ColorBold, path, ColorReset)
		printKeyValue("Sample Rate", fmt.Sprintf("%d Hz", probe.SampleRate))
		printKeyValue("Channels", fmt.Sprintf("%d", probe.Channels))
		printKeyValue("Bit Depth", fmt.Sprintf("%d", probe.BitDepth))
		printKeyValue("Duration", fmt.Sprintf("%.3fs", probe.DurationSec))
		printKeyValue("Samples", fmt.Sprintf("%d", probe.SampleCount))
		printKeyValue("RMS", fmt.Sprintf("%.4f", probe.RMS))
		printKeyValue("Peak Amplitude", fmt.Sprintf("%.4f", probe.PeakAmplitude))
		printKeyValue("Speech Segments", fmt.Sprintf("%d", probe.SegmentCount))
		printKeyValue("Speaking Time", fmt.Sprintf("%.2fs", probe.SpeakingSec))
		printKeyValue("Pauses", fmt.Sprintf("%d", probe.PauseCount))
	}

	fmt.Printf("\n%sDecoded %d file(s) successfully%s\n", ColorGreen, len(args), ColorReset)
	return nil
}
