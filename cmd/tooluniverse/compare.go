package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/June01/ToolUniverse/internal/evaluate"
	"github.com/June01/ToolUniverse/internal/extract"
	"github.com/June01/ToolUniverse/pkg/types"
)

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <predicted> <reference>",
		Short: "Compare a predicted call against a ground-truth call",
		Long: `Compare a predicted function call against a reference call. Both
inputs may be bare call JSON or raw model output in any supported
dialect. By default names, argument key sets, and argument values must
all match.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pred, err := readCall(cmd, args[0])
			if err != nil {
				return err
			}
			ref, err := readCall(cmd, args[1])
			if err != nil {
				return err
			}

			skipArguments, _ := cmd.Flags().GetBool("skip-arguments")
			skipValues, _ := cmd.Flags().GetBool("skip-values")

			return printVerdict(evaluate.CompareCalls(pred, ref, !skipArguments, !skipValues))
		},
	}

	cmd.Flags().Bool("reasoning", false, "Use the reasoning-model dialect order (<think>/<tool_call>)")
	cmd.Flags().Bool("repair", false, "Attempt JSON repair on malformed payloads")
	cmd.Flags().Bool("skip-arguments", false, "Skip the argument key-set check")
	cmd.Flags().Bool("skip-values", false, "Skip the argument value check")
	return cmd
}

func readCall(cmd *cobra.Command, path string) (types.FunctionCall, error) {
	input, err := readInput(path)
	if err != nil {
		return types.FunctionCall{}, err
	}
	call, _ := newExtractor(cmd).Extract(extract.FromText(input))
	if call == nil {
		return types.FunctionCall{}, fmt.Errorf("no function call found in %s", path)
	}
	return *call, nil
}
