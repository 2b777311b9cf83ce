// Package extract turns a parsed session transcript into the status,
// summary and stats consumed by the notification hook.
package extract

import (
	"strings"

	"github.com/qiwei66/claude-bell/internal/transcript"
)

// Status is the terminal state of a session.
type Status string

const (
	StatusSuccess      Status = "success"
	StatusError        Status = "error"
	StatusActionNeeded Status = "action_needed"
)

// Result is the extraction output. Summary is never empty and Status always
// holds one of the three defined values; an unclassifiable or missing
// transcript yields StatusSuccess with the fallback summary.
type Result struct {
	Status  Status
	Summary string
	Stats   string
}

// Options configures an Extractor. Zero values fall back to the package
// defaults, so Extractor{} behaves sensibly.
type Options struct {
	// SummaryLimit is the maximum summary length in runes before the
	// truncation marker is appended.
	SummaryLimit int

	// Delimiter separates the three fields in the encoded result line.
	// Occurrences inside summary or stats are stripped before joining.
	Delimiter string

	// FallbackSummary replaces an empty summary.
	FallbackSummary string

	// PermissionWords classify a session as action_needed when any event
	// text contains one of them (case-insensitive).
	PermissionWords []string

	// FailureWords classify a session as error.
	FailureWords []string

	// SkipPrompts are user inputs ignored when choosing the summary source,
	// such as bare confirmations.
	SkipPrompts []string
}

// Default option values. The vocabulary covers English plus the Chinese
// phrasings Claude Code emits for localized sessions.
const (
	DefaultSummaryLimit    = 80
	DefaultDelimiter       = "|"
	DefaultFallbackSummary = "task completed"
	TruncationMarker       = "..."

	// minPromptLen filters out user inputs too short to describe a task.
	minPromptLen = 5
)

var (
	DefaultPermissionWords = []string{
		"permission", "approve", "confirm", "waiting for your", "权限", "确认", "批准",
	}
	DefaultFailureWords = []string{
		"error", "fail", "exception", "错误", "失败", "异常",
	}
	DefaultSkipPrompts = []string{
		"continue", "ok", "okay", "yes", "no", "y", "n", "go", "继续", "好的", "是",
	}
)

// Extractor derives a Result from transcript events.
type Extractor struct {
	opts Options
}

// New returns an Extractor with defaults applied for unset options.
func New(opts Options) *Extractor {
	if opts.SummaryLimit <= 0 {
		opts.SummaryLimit = DefaultSummaryLimit
	}
	if opts.Delimiter == "" {
		opts.Delimiter = DefaultDelimiter
	}
	if opts.FallbackSummary == "" {
		opts.FallbackSummary = DefaultFallbackSummary
	}
	if opts.PermissionWords == nil {
		opts.PermissionWords = DefaultPermissionWords
	}
	if opts.FailureWords == nil {
		opts.FailureWords = DefaultFailureWords
	}
	if opts.SkipPrompts == nil {
		opts.SkipPrompts = DefaultSkipPrompts
	}
	return &Extractor{opts: opts}
}

// Extract classifies the session and composes its summary and stats. It is
// total: any input, including nil, produces a well-formed Result.
func (e *Extractor) Extract(events []transcript.Event) Result {
	summary, stats := e.compose(events)
	return Result{
		Status:  e.classify(events),
		Summary: summary,
		Stats:   stats,
	}
}

// ExtractFile resolves, parses and extracts in one call. Every failure path
// degrades to the fallback Result; a missing transcript is not an error
// worth surfacing to the operator.
func (e *Extractor) ExtractFile(path, sessionID, claudeHome string) Result {
	resolved, err := transcript.Resolve(path, sessionID, claudeHome)
	if err != nil {
		return e.fallback()
	}
	events, err := transcript.ParseFile(resolved)
	if err != nil {
		return e.fallback()
	}
	return e.Extract(events)
}

func (e *Extractor) fallback() Result {
	return Result{Status: StatusSuccess, Summary: e.opts.FallbackSummary}
}

// Encode serializes the result as status<delim>summary<delim>stats. This is
// the text IPC contract with the calling hook; field order and count are
// fixed. Delimiter occurrences inside fields are stripped so the line always
// splits back into exactly three fields.
func (r Result) Encode(delim string) string {
	if delim == "" {
		delim = DefaultDelimiter
	}
	clean := func(s string) string {
		return strings.ReplaceAll(s, delim, "")
	}
	return strings.Join([]string{string(r.Status), clean(r.Summary), clean(r.Stats)}, delim)
}
