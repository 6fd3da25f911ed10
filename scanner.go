package rtlweaver

import (
	"regexp"
	"sort"
	"strings"
)

// RegionKind distinguishes the two marker syntaxes.
type RegionKind string

const (
	// KindSingle is declared by a one-line `// @LLM_EDIT: NAME` marker.
	KindSingle RegionKind = "single"
	// KindBlock is declared by a BEGIN/END marker pair.
	KindBlock RegionKind = "block"
)

// EditRegion is a located, named replacement target inside a template.
// Start and End are byte offsets into the original text; End is exclusive.
// OriginalText is kept for diagnostics and prompt snippets only.
type EditRegion struct {
	Name         string
	Kind         RegionKind
	Start        int
	End          int
	OriginalText string
	Marker       Position // position of the marker line that declared the region
}

// DefaultLookaheadWindow bounds how many bytes of filler lines a single-line
// marker may consume below itself.
const DefaultLookaheadWindow = 600

var (
	singleMarkerRe = regexp.MustCompile(`^[ \t]*//[ \t]*@LLM_EDIT:[ \t]*([A-Za-z0-9_]+)[ \t]*$`)
	blockBeginRe   = regexp.MustCompile(`^[ \t]*//[ \t]*@LLM_EDIT BEGIN[ \t]+([A-Za-z0-9_]+)[ \t]*$`)
	blockEndRe     = regexp.MustCompile(`^[ \t]*//[ \t]*@LLM_EDIT END[ \t]+([A-Za-z0-9_]+)[ \t]*$`)
)

// scanState is the scanner's mode between lines.
type scanState int

const (
	stateOutside scanState = iota
	stateInsideBlock
	statePostSingle
)

// ScanRegions parses template text into the ordered list of edit regions,
// using the default look-ahead window for single-line markers.
func ScanRegions(text string) ([]EditRegion, error) {
	return scanRegions(text, DefaultLookaheadWindow)
}

// scanRegions walks the template line by line as a small state machine:
//
//	outside     — marker lines open regions, everything else passes through
//	insideBlock — only the matching END marker closes the region; any other
//	              line (markers included) is block content
//	postSingle  — filler lines extend the single region's span until the
//	              first non-filler line or until the window is spent
func scanRegions(text string, window int) ([]EditRegion, error) {
	var (
		regions []EditRegion
		state   = stateOutside
		open    EditRegion
	)

	lineNo := 0
	offset := 0
	for offset < len(text) {
		lineNo++
		lineEnd := strings.IndexByte(text[offset:], '\n')
		var next int
		if lineEnd < 0 {
			lineEnd = len(text)
			next = lineEnd
		} else {
			lineEnd += offset
			next = lineEnd + 1
		}
		line := strings.TrimSuffix(text[offset:lineEnd], "\r")

		if state == stateInsideBlock {
			if m := blockEndRe.FindStringSubmatch(line); m != nil {
				if m[1] != open.Name {
					return nil, NewUnmatchedRegionError(open.Marker, open.Name, text)
				}
				// The END line itself stays, indentation included.
				open.End = offset
				open.OriginalText = text[open.Start:open.End]
				regions = append(regions, open)
				state = stateOutside
			}
			offset = next
			continue
		}

		if state == statePostSingle {
			if isFillerLine(line) && next-open.Start <= window {
				open.End = next
				offset = next
				continue
			}
			open.OriginalText = text[open.Start:open.End]
			regions = append(regions, open)
			state = stateOutside
			// fall through: the current line is handled below
		}

		if m := blockBeginRe.FindStringSubmatch(line); m != nil {
			open = EditRegion{
				Name:   m[1],
				Kind:   KindBlock,
				Start:  lineEnd, // replacement begins at the BEGIN line's newline
				Marker: Position{Line: lineNo, Offset: offset},
			}
			state = stateInsideBlock
		} else if m := singleMarkerRe.FindStringSubmatch(line); m != nil {
			open = EditRegion{
				Name:   m[1],
				Kind:   KindSingle,
				Start:  lineEnd,
				End:    lineEnd,
				Marker: Position{Line: lineNo, Offset: offset},
			}
			state = statePostSingle
		}
		offset = next
	}

	switch state {
	case stateInsideBlock:
		return nil, NewUnmatchedRegionError(open.Marker, open.Name, text)
	case statePostSingle:
		open.OriginalText = text[open.Start:open.End]
		regions = append(regions, open)
	}

	seen := make(map[string]bool, len(regions))
	for _, r := range regions {
		if seen[r.Name] {
			return nil, NewDuplicateRegionError(r.Marker, r.Name, text)
		}
		seen[r.Name] = true
	}

	sort.SliceStable(regions, func(i, j int) bool { return regions[i].Start < regions[j].Start })

	// Disjoint marker syntaxes make overlap impossible by construction;
	// verify rather than assume.
	for i := 1; i < len(regions); i++ {
		if regions[i].Start < regions[i-1].End {
			return nil, &ScanError{
				Pos:     regions[i].Marker,
				Message: "internal: regions " + regions[i-1].Name + " and " + regions[i].Name + " overlap",
			}
		}
	}

	return regions, nil
}

// isFillerLine reports whether a line below a single-line marker is still
// part of its replaceable span: blank lines, full-line // comments and
// one-line /* */ comments (the `???` placeholder stand-ins are a subset of
// these). Marker lines are never filler.
func isFillerLine(line string) bool {
	if isMarkerLine(line) {
		return false
	}
	t := strings.TrimSpace(line)
	if t == "" {
		return true
	}
	if strings.HasPrefix(t, "//") {
		return true
	}
	if strings.HasPrefix(t, "/*") && strings.HasSuffix(t, "*/") {
		return true
	}
	return false
}

func isMarkerLine(line string) bool {
	return singleMarkerRe.MatchString(line) ||
		blockBeginRe.MatchString(line) ||
		blockEndRe.MatchString(line)
}
