package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/June01/ToolUniverse/internal/extract"
	"github.com/June01/ToolUniverse/pkg/types"
)

// extractResult is the JSON shape emitted per extraction.
type extractResult struct {
	Call    *types.FunctionCall `json:"call"`
	Message *string             `json:"message,omitempty"`
}

func newExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract a function call from raw model output",
		Long: `Extract a function call from raw model output read from a file or
stdin. With --jsonl each input line is extracted independently and one
JSON result is emitted per line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			input, err := readInput(path)
			if err != nil {
				return err
			}

			extractor := newExtractor(cmd)
			wantMessage, _ := cmd.Flags().GetBool("message")

			if jsonl, _ := cmd.Flags().GetBool("jsonl"); jsonl {
				workers, _ := cmd.Flags().GetInt("workers")
				return runBatchExtract(extractor, input, wantMessage, workers)
			}

			call, message := extractor.Extract(extract.FromText(input))
			if err := emitResult(call, message, wantMessage); err != nil {
				return err
			}
			if call == nil {
				return &exitCodeError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().Bool("reasoning", false, "Use the reasoning-model dialect order (<think>/<tool_call>)")
	cmd.Flags().Bool("message", false, "Include the leading natural-language message")
	cmd.Flags().Bool("repair", false, "Attempt JSON repair on malformed payloads")
	cmd.Flags().Bool("jsonl", false, "Treat each input line as an independent raw output")
	cmd.Flags().Int("workers", runtime.NumCPU(), "Parallel workers for --jsonl")
	return cmd
}

// runBatchExtract extracts every line independently. Extraction is
// pure, so lines fan out across workers and results keep input order.
func runBatchExtract(extractor *extract.Extractor, input string, wantMessage bool, workers int) error {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	if workers <= 0 {
		workers = 1
	}
	results := make([]extractResult, len(lines))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			call, message := extractor.Extract(extract.FromText(line))
			results[i] = buildResult(call, message, wantMessage)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	failures := 0
	for _, result := range results {
		if result.Call == nil {
			failures++
		}
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}
	if failures > 0 {
		fmt.Fprintln(os.Stderr, gray(fmt.Sprintf("%d/%d lines had no function call", failures, len(lines))))
		return &exitCodeError{code: 1}
	}
	return nil
}

func buildResult(call *types.FunctionCall, message string, wantMessage bool) extractResult {
	result := extractResult{Call: call}
	if wantMessage {
		result.Message = &message
	}
	return result
}

func emitResult(call *types.FunctionCall, message string, wantMessage bool) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(buildResult(call, message, wantMessage))
}
