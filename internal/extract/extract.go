// Package extract recovers a structured function call from free-form
// model output. Models emit the call JSON in one of several dialects
// (bare JSON, bracket-tagged, XML-tagged, angle-tagged); the extractor
// runs the dialects in priority order and stops at the first slice that
// parses.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/kaptinlin/jsonrepair"

	"github.com/June01/ToolUniverse/internal/utils"
	"github.com/June01/ToolUniverse/pkg/types"
)

// Dialect describes one tagged convention used to wrap the call JSON.
type Dialect struct {
	Name string
	// Start marks the beginning of the call payload.
	Start string
	// Ends are candidate end markers; the first one found after Start
	// wins, earlier entries preferred.
	Ends []string
	// OpenEnded lets the payload run to the end of the input when no
	// end marker exists. When false, a missing end marker skips the
	// dialect entirely.
	OpenEnded bool
	// ThinkMessage prefers the content of a <think> block as the
	// leading message, falling back to the trimmed text before Start.
	ThinkMessage bool
}

const (
	thinkStart = "<think>"
	thinkEnd   = "</think>"
)

// The supported dialects. Bracket and XML tags come from different
// model families and never collide in practice, but each attempt still
// locates its own markers independently.
var (
	// BracketTag: [TOOL_CALLS]{...}</s> (or <|eom_id|>).
	BracketTag = Dialect{
		Name:      "bracket",
		Start:     "[TOOL_CALLS]",
		Ends:      []string{"</s>", "<|eom_id|>"},
		OpenEnded: true,
	}
	// XMLToolTag: <tool_call>{...}</tool_call>, optionally preceded by
	// a <think> block carrying the model's reasoning.
	XMLToolTag = Dialect{
		Name:         "xml",
		Start:        "<tool_call>",
		Ends:         []string{"</tool_call>"},
		ThinkMessage: true,
	}
	// AngleTag: <functioncall>{...}</functioncall>, kept for legacy
	// fine-tunes.
	AngleTag = Dialect{
		Name:      "angle",
		Start:     "<functioncall>",
		Ends:      []string{"</functioncall>"},
		OpenEnded: true,
	}
)

// GenericDialects is the priority order for standard completion models.
func GenericDialects() []Dialect {
	return []Dialect{BracketTag, AngleTag}
}

// ReasoningDialects is the priority order for reasoning models, which
// wrap the call in <tool_call> tags after a think block.
func ReasoningDialects() []Dialect {
	return []Dialect{XMLToolTag, BracketTag, AngleTag}
}

// RawOutput is what the extractor consumes: either a call some upstream
// component already decoded, or raw text fragments (streamed chunks are
// concatenated without a separator).
type RawOutput struct {
	Call      *types.FunctionCall
	Fragments []string
}

// FromCall wraps an already-structured call.
func FromCall(call types.FunctionCall) RawOutput {
	return RawOutput{Call: &call}
}

// FromText wraps a single text buffer.
func FromText(text string) RawOutput {
	return RawOutput{Fragments: []string{text}}
}

// FromFragments wraps streamed text chunks.
func FromFragments(fragments ...string) RawOutput {
	return RawOutput{Fragments: fragments}
}

// Extractor runs the dialect pipeline. It is stateless and safe for
// concurrent use.
type Extractor struct {
	dialects []Dialect
	repair   bool
	verbose  bool
	logger   *utils.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDialects replaces the dialect priority order.
func WithDialects(dialects ...Dialect) Option {
	return func(e *Extractor) { e.dialects = dialects }
}

// WithRepair retries a failed payload through jsonrepair before giving
// up on the dialect. Off by default so strict fallthrough order holds.
func WithRepair() Option {
	return func(e *Extractor) { e.repair = true }
}

// WithVerbose echoes the raw text and parse failures to stdout. Output
// is diagnostic only and never changes results.
func WithVerbose() Option {
	return func(e *Extractor) { e.verbose = true }
}

// New builds an extractor with the generic dialect order.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		dialects: GenericDialects(),
		logger:   utils.NewComponentLogger("Extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewReasoning builds an extractor with the reasoning dialect order.
func NewReasoning(opts ...Option) *Extractor {
	return New(append([]Option{WithDialects(ReasoningDialects()...)}, opts...)...)
}

var verboseLabel = color.New(color.FgBlue, color.Bold)

// Extract recovers a single function call from raw output. The second
// return value is the leading natural-language message: the text before
// the recognized tag (or the think-block content for reasoning
// dialects), "" when the whole input was the call, and the entire
// original text when nothing parsed. A nil call means extraction
// failed; it is never an error.
func (e *Extractor) Extract(raw RawOutput) (*types.FunctionCall, string) {
	if raw.Call != nil {
		return raw.Call, ""
	}

	text := strings.Join(raw.Fragments, "")
	if e.verbose {
		verboseLabel.Print("Possible LLM outputs for function call:")
		fmt.Println(" " + text)
	}

	// Cheapest and least ambiguous: the whole string is the call.
	if call, ok := e.decode("whole-string", strings.TrimSpace(text)); ok {
		return call, ""
	}

	for _, d := range e.dialects {
		if call, message, ok := e.tryDialect(d, text); ok {
			return call, message
		}
	}

	if e.verbose {
		fmt.Println("Not a function call:", text)
	}
	e.logger.Debug("no dialect matched (%d bytes)", len(text))
	return nil, text
}

// tryDialect slices the payload between the dialect's markers and
// parses it. Only the first occurrence of each marker counts; multiple
// embedded calls are not supported.
func (e *Extractor) tryDialect(d Dialect, text string) (*types.FunctionCall, string, bool) {
	start := strings.Index(text, d.Start)
	if start == -1 {
		return nil, "", false
	}
	payloadStart := start + len(d.Start)

	payloadEnd := -1
	for _, marker := range d.Ends {
		if idx := strings.Index(text[payloadStart:], marker); idx != -1 {
			payloadEnd = payloadStart + idx
			break
		}
	}
	if payloadEnd == -1 {
		if !d.OpenEnded {
			return nil, "", false
		}
		payloadEnd = len(text)
	}

	call, ok := e.decode(d.Name, strings.TrimSpace(text[payloadStart:payloadEnd]))
	if !ok {
		return nil, "", false
	}
	return call, leadingMessage(d, text, start), true
}

// leadingMessage extracts the natural-language part accompanying a
// recognized call.
func leadingMessage(d Dialect, text string, start int) string {
	if !d.ThinkMessage {
		return text[:start]
	}
	if ts := strings.Index(text, thinkStart); ts != -1 {
		body := ts + len(thinkStart)
		if te := strings.Index(text[body:], thinkEnd); te != -1 {
			return strings.TrimSpace(text[body : body+te])
		}
	}
	return strings.TrimSpace(text[:start])
}

// decode parses one payload candidate, optionally retrying through
// jsonrepair.
func (e *Extractor) decode(attempt, payload string) (*types.FunctionCall, bool) {
	call, err := decodeCall(payload)
	if err == nil {
		return call, true
	}
	if e.verbose {
		fmt.Printf("Failed to parse JSON in %s attempt: %v\n", attempt, err)
	}
	e.logger.Debug("%s attempt failed: %v", attempt, err)

	if !e.repair {
		return nil, false
	}
	fixed, repairErr := jsonrepair.JSONRepair(payload)
	if repairErr != nil {
		e.logger.Debug("%s repair failed: %v", attempt, repairErr)
		return nil, false
	}
	call, err = decodeCall(fixed)
	if err != nil {
		e.logger.Debug("%s attempt failed after repair: %v", attempt, err)
		return nil, false
	}
	return call, true
}

// decodeCall parses a payload as a single JSON object. UseNumber keeps
// integer arguments distinguishable from floats for type conformance
// checks downstream.
func decodeCall(payload string) (*types.FunctionCall, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	var call types.FunctionCall
	if err := dec.Decode(&call); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after call object")
	}
	return &call, nil
}
