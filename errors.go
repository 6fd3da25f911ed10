package rtlweaver

import (
	"fmt"
	"strings"
)

// Position represents a location in template text.
type Position struct {
	Line   int // 1-based line number
	Offset int // byte offset into the template
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("line %d (offset %d)", p.Line, p.Offset)
}

// ScanError is the base error type for all template scanning errors.
type ScanError struct {
	Pos     Position // Position where the error occurred
	Message string   // Error message
	Context string   // Surrounding template lines for context
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s at %s\nContext: %s", e.Message, e.Pos, e.Context)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// UnmatchedRegionError reports an @LLM_EDIT BEGIN without a matching END of
// the same name.
type UnmatchedRegionError struct {
	ScanError
	Name string // Name of the unmatched block region
}

// Error implements the error interface.
func (e *UnmatchedRegionError) Error() string {
	return fmt.Sprintf("unmatched @LLM_EDIT block %q at %s: %s\nContext: %s",
		e.Name, e.Pos, e.Message, e.Context)
}

// DuplicateRegionError reports two regions (of either kind) sharing a name.
type DuplicateRegionError struct {
	ScanError
	Name string // The duplicated region name
}

// Error implements the error interface.
func (e *DuplicateRegionError) Error() string {
	return fmt.Sprintf("duplicate @LLM_EDIT region name %q at %s: %s\nContext: %s",
		e.Name, e.Pos, e.Message, e.Context)
}

// ProviderOutputError reports a provider response that does not follow the
// edit contract (non-JSON, wrong shape, malformed entries).
type ProviderOutputError struct {
	Message string // What was wrong with the response
	Raw     string // Truncated raw response for diagnostics
}

// Error implements the error interface.
func (e *ProviderOutputError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("invalid provider output: %s\nRaw: %s", e.Message, e.Raw)
	}
	return fmt.Sprintf("invalid provider output: %s", e.Message)
}

// UnknownRegionError reports a provider edit naming a region that was never
// scanned. The provider is not trusted to invent placement.
type UnknownRegionError struct {
	Name string // The region name the provider invented
}

// Error implements the error interface.
func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("provider attempted to edit unknown region %q", e.Name)
}

// ForbiddenTokenError reports patch code containing a denylisted token.
type ForbiddenTokenError struct {
	Region string // Region whose patch carried the token
	Token  string // The offending token
}

// Error implements the error interface.
func (e *ForbiddenTokenError) Error() string {
	return fmt.Sprintf("edit for region %q contains forbidden token %q", e.Region, e.Token)
}

// IncompleteCoverageError reports regions the provider left unfilled. It is
// only produced under CoverageStrict; the default policy is best-effort
// partial fill.
type IncompleteCoverageError struct {
	Missing []string // Region names without a patch, in template order
}

// Error implements the error interface.
func (e *IncompleteCoverageError) Error() string {
	return fmt.Sprintf("provider left regions unfilled: %s", strings.Join(e.Missing, ", "))
}

// NewUnmatchedRegionError creates a new UnmatchedRegionError.
func NewUnmatchedRegionError(pos Position, name, template string) *UnmatchedRegionError {
	return &UnmatchedRegionError{
		ScanError: ScanError{
			Pos:     pos,
			Message: "BEGIN marker has no matching END of the same name",
			Context: extractContext(template, pos),
		},
		Name: name,
	}
}

// NewDuplicateRegionError creates a new DuplicateRegionError.
func NewDuplicateRegionError(pos Position, name, template string) *DuplicateRegionError {
	return &DuplicateRegionError{
		ScanError: ScanError{
			Pos:     pos,
			Message: "region names must be unique within a template",
			Context: extractContext(template, pos),
		},
		Name: name,
	}
}

// NewProviderOutputError creates a new ProviderOutputError with the raw
// response truncated for readability.
func NewProviderOutputError(message, raw string) *ProviderOutputError {
	return &ProviderOutputError{Message: message, Raw: truncate(raw, 400)}
}

// extractContext extracts a snippet of text around the error position for
// context. It includes a few lines before and after the error line.
func extractContext(content string, pos Position) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	if pos.Line > len(lines) {
		return content // Fallback if position is out of range
	}

	// Determine the range of lines to include
	startLine := max(0, pos.Line-3)
	endLine := min(len(lines)-1, pos.Line+1)

	// Build the context with line numbers
	var contextBuilder strings.Builder
	for i := startLine; i <= endLine; i++ {
		lineNum := i + 1 // Convert to 1-based line number
		if lineNum == pos.Line {
			// Highlight the error line
			contextBuilder.WriteString(fmt.Sprintf("-> %d: %s\n", lineNum, lines[i]))
		} else {
			contextBuilder.WriteString(fmt.Sprintf("   %d: %s\n", lineNum, lines[i]))
		}
	}

	return contextBuilder.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
