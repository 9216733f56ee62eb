package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/character"
)

// ValidationResult reports one checked path.
type ValidationResult struct {
	Path       string   `json:"path" yaml:"path"`
	Valid      bool     `json:"valid" yaml:"valid"`
	Characters []string `json:"characters,omitempty" yaml:"characters,omitempty"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
}

var errInvalidRecords = errors.New("invalid character records")

var validateCmd = &cobra.Command{
	Use:   "validate <file|dir>...",
	Short: "Validate character record files",
	Long: `Validate character records against the embedded schema without
starting a server. Directories are checked the way the server loads them,
including duplicate ids.

Examples:
  promptkit validate zephyr.json
  promptkit validate ~/.promptkit/characters`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]ValidationResult, 0, len(args))
		failed := 0
		for _, path := range args {
			r := validatePath(cmd, path)
			if !r.Valid {
				failed++
			}
			results = append(results, r)
		}

		if api.GetOutputFormat() == api.OutputFormatText {
			for _, r := range results {
				if r.Valid {
					fmt.Printf("ok    %s %v\n", r.Path, r.Characters)
				} else {
					fmt.Printf("FAIL  %s: %s\n", r.Path, r.Error)
				}
			}
		} else if err := api.Output(results); err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%w: %d of %d failed", errInvalidRecords, failed, len(args))
		}
		return nil
	},
}

func validatePath(cmd *cobra.Command, path string) ValidationResult {
	r := ValidationResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	var chars []*character.Character
	if info.IsDir() {
		chars, err = character.LoadDir(cmd.Context(), path)
	} else {
		var c *character.Character
		if c, err = character.LoadFile(path); err == nil {
			chars = []*character.Character{c}
		}
	}
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Valid = true
	for _, c := range chars {
		r.Characters = append(r.Characters, c.String())
	}
	return r
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
