package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/estimator/internal/disposition"
	"github.com/JaimeStill/estimator/internal/extraction"
	"github.com/JaimeStill/estimator/internal/printspec"
)

var quoteFlags struct {
	decide bool
}

var quoteCmd = &cobra.Command{
	Use:   "quote [text|-]",
	Short: "Extract, validate and price order text",
	Long:  "quote assesses order text given as arguments, or read from stdin when\nthe only argument is \"-\" or no argument is given.",
	RunE:  runQuote,
}

type quoteResult struct {
	*disposition.Assessment
	Suggested printspec.Decision `json:"suggested_decision,omitempty"`
}

func init() {
	quoteCmd.Flags().BoolVar(&quoteFlags.decide, "decide", false, "also ask the decision prompt for a suggested disposition")
}

func runQuote(cmd *cobra.Command, args []string) error {
	text, err := orderText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no order text given")
	}

	svc, logger, err := loadServices(cmd)
	if err != nil {
		return err
	}
	extractor := extraction.New(svc.Completer, svc.Conversation, logger)

	a, err := disposition.Assess(cmd.Context(), extractor, text)
	if err != nil {
		return err
	}

	out := quoteResult{Assessment: a}
	if quoteFlags.decide {
		out.Suggested = extractor.Decide(cmd.Context(), a.Spec, text)
	}
	return render(cmd.OutOrStdout(), rootFlags.output, out)
}

func orderText(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
