package main

import (
	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/home"
	"github.com/cosmicfriends/promptkit/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "promptkit",
	Short: "Character prompt assembly for image generators",
	Long: `promptkit turns character records into image-generation prompts.

Each character record describes physical traits, wardrobe, reference poses
and scene templates. From one record promptkit composes:
  - Structured (sectioned) and flat prompts for a scene, pose and outfit
  - Sprite sheets with one prompt per pose
  - Mood-driven social content prompts and varied batches
  - Platform exports for Midjourney, DALL-E, Stable Diffusion and Nano Banana`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.promptkit/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "promptkit home directory (default: ~/.promptkit)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml, json or text",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// openHome returns the home directory selected by --home.
func openHome() (*home.Dir, error) {
	return home.New(homeDir)
}

// configFile returns --config, or the home config file when it exists.
func configFile(h *home.Dir) string {
	if cfgFile != "" {
		return cfgFile
	}
	if h.ConfigExists() {
		return h.ConfigPath()
	}
	return ""
}
