package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parkinsense/symptom-engine/configs"
)

// configTestCmd represents the config-test command
var configTestCmd = &cobra.Command{
	Use:   "config-test",
	Short: "Load, validate, and display the effective configuration",
	Long: `Load the configuration and display every effective value, to verify
that your YAML file and environment overrides are being parsed the way
you expect.

Examples:
  # Test with the default config file search path
  symptom-engine config-test

  # Test with a specific config file
  symptom-engine --config /path/to/config.yaml config-test`,
	RunE: runConfigTest,
}

func init() {
	rootCmd.AddCommand(configTestCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	fmt.Println("SYMPTOM ENGINE CONFIGURATION TEST")
	fmt.Println(strings.Repeat("=", 60))

	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	printSection("APPLICATION SETTINGS")
	printKeyValue("Verbose", fmt.Sprintf("%t", config.Verbose))
	printKeyValue("Log Level", config.LogLevel)
	printKeyValue("Output Format", config.OutputFormat)
	printKeyValue("Config Directory", config.ConfigDir)
	printKeyValue("Data Directory", config.DataDir)

	printSection("AUDIO CONFIGURATION")
	printKeyValue("Sample Rate", fmt.Sprintf("%d Hz", config.Audio.SampleRate))
	printKeyValue("Channels", fmt.Sprintf("%d", config.Audio.Channels))
	printKeyValue("Min Duration", fmt.Sprintf("%.1fs", config.Audio.MinDurationSec))
	printKeyValue("Max Upload", fmt.Sprintf("%d bytes", config.Audio.MaxUploadBytes))

	printSection("VOICE CONFIGURATION")
	printKeyValue("Scoring Scheme", config.Voice.Scoring.Scheme)
	printKeyValue("Silence Threshold", fmt.Sprintf("%.3f", config.Voice.SilenceThreshold))
	printKeyValue("Min Pause Duration", fmt.Sprintf("%.2fs", config.Voice.MinPauseDurationSec))

	printSection("TREMOR CONFIGURATION")
	printKeyValue("High-Pass Alpha", fmt.Sprintf("%.2f", config.Tremor.HighPassAlpha))

	printSection("SERVER CONFIGURATION")
	printKeyValue("Address", config.Server.Addr)
	printKeyValue("Read Timeout", config.Server.ReadTimeout.String())
	printKeyValue("Write Timeout", config.Server.WriteTimeout.String())
	printKeyValue("Idle Timeout", config.Server.IdleTimeout.String())
	printKeyValue("Shutdown Timeout", config.Server.ShutdownTimeout.String())

	printSection("OUTPUT CONFIGURATION")
	printKeyValue("Precision", fmt.Sprintf("%d", config.Output.Precision))
	printKeyValue("Include Metadata", fmt.Sprintf("%t", config.Output.IncludeMetadata))
	printKeyValue("Timestamps", fmt.Sprintf("%t", config.Output.Timestamps))
	printKeyValue("Colors", fmt.Sprintf("%t", config.Output.Colors))

	if err := configs.ValidateConfig(config); err != nil {
		fmt.Println()
		fmt.Printf("%sCONFIGURATION INVALID: %v%s\n", ColorRed, err, ColorReset)
		return err
	}

	fmt.Println()
	fmt.Println(ColorGreen + strings.Repeat("-", 60))
	fmt.Println("CONFIGURATION TEST COMPLETED SUCCESSFULLY")
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("Config file: %s\n", used)
	}
	fmt.Println(strings.Repeat("=", 60) + ColorReset)

	return nil
}

func printSection(title string) {
	fmt.Printf("\n%s\n", title)
	fmt.Println(strings.Repeat("-", len(title)))
}

func printKeyValue(key, value string) {
	fmt.Printf("%-25s %s\n", key+":", value)
}
