package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/estimator/internal/printspec"
	"github.com/JaimeStill/estimator/internal/validation"
)

var validateFlags struct {
	spec string
	text string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a specification file",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.spec, "spec", "", "path to a specification JSON file (required)")
	f.StringVar(&validateFlags.text, "text", "", "original order text checked for free pricing")

	_ = validateCmd.MarkFlagRequired("spec")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(validateFlags.spec)
	if err != nil {
		return fmt.Errorf("read spec: %w", err)
	}

	var spec printspec.Specification
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("decode spec: %w", err)
	}

	return render(cmd.OutOrStdout(), rootFlags.output, validation.Validate(spec, validateFlags.text))
}
