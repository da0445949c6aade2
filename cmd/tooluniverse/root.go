// Command tooluniverse extracts function calls from model output and
// checks them against tool catalogs or reference calls.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/June01/ToolUniverse/internal/extract"
	"github.com/June01/ToolUniverse/internal/toolregistry"
	"github.com/June01/ToolUniverse/pkg/types"
)

const version = "0.2.0"

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

// isTTY checks if the current environment has a TTY available
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// exitCodeError carries a bare exit code through cobra without an
// error message (the verdict was already printed).
type exitCodeError struct{ code int }

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tooluniverse",
		Short: "Function-call extraction and validation for LLM tool use",
		Long: fmt.Sprintf(`%s

Recovers structured function calls from raw model output (bare JSON,
[TOOL_CALLS], <tool_call>, <functioncall> dialects) and validates them
against declared tool signatures or reference calls.

%s
  tooluniverse extract output.txt --message
  tooluniverse extract --jsonl batch.txt --reasoning
  tooluniverse validate call.json --tools ./tools
  tooluniverse compare predicted.json reference.json
  tooluniverse tools list --tools ./tools`,
			bold("ToolUniverse "+version), bold("EXAMPLES:")),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose diagnostic output")
	rootCmd.PersistentFlags().String("tools", "", "Tool definition file or directory")

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newToolsCommand())
	rootCmd.AddCommand(newVersionCommand())

	// Configure viper
	viper.SetConfigName("tooluniverse-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tooluniverse %s\n", version)
		},
	}
}

// readInput reads the named file, or stdin when path is "-" or empty.
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// newExtractor builds an extractor from the command's flags.
func newExtractor(cmd *cobra.Command) *extract.Extractor {
	var opts []extract.Option
	if ok, _ := cmd.Flags().GetBool("repair"); ok {
		opts = append(opts, extract.WithRepair())
	}
	if ok, _ := cmd.Flags().GetBool("verbose"); ok {
		opts = append(opts, extract.WithVerbose())
	}
	if ok, _ := cmd.Flags().GetBool("reasoning"); ok {
		return extract.NewReasoning(opts...)
	}
	return extract.New(opts...)
}

// loadRegistry builds a registry from --tools, falling back to the
// "tools" key of the config file.
func loadRegistry(cmd *cobra.Command) (*toolregistry.Registry, error) {
	path, _ := cmd.Flags().GetString("tools")
	if path == "" {
		if err := viper.ReadInConfig(); err == nil {
			path = viper.GetString("tools")
		}
	}
	if path == "" {
		return nil, fmt.Errorf("no tool definitions: pass --tools or set \"tools\" in tooluniverse-config.yaml")
	}

	registry := toolregistry.NewRegistry(toolregistry.Config{Cache: toolregistry.DefaultCacheConfig()})
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat tools path: %w", err)
	}
	if info.IsDir() {
		_, err = registry.LoadDir(path)
	} else {
		_, err = registry.LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return registry, nil
}

// printVerdict renders a verdict and returns the matching exit error
// (nil when the verdict passed).
func printVerdict(v types.Verdict) error {
	if v.OK {
		if isTTY() {
			fmt.Println(green("PASS"), v.Reason)
		} else {
			fmt.Println("PASS", v.Reason)
		}
		return nil
	}
	if isTTY() {
		fmt.Println(red("FAIL"), v.Reason)
	} else {
		fmt.Println("FAIL", v.Reason)
	}
	return &exitCodeError{code: 1}
}
