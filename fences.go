package rtlweaver

import (
	"regexp"
	"strings"
)

// Providers routinely wrap a whole response, or an individual edit, in a
// markdown code fence even when told not to. StripFence peels exactly one
// outer fence; inner fences and all other content are preserved.

var outerFenceRe = regexp.MustCompile("(?s)^```[A-Za-z0-9_+.-]*[ \t]*\n?(.*?)\n?[ \t]*```$")

// StripFence returns s without a single enclosing code fence, if present,
// with surrounding whitespace trimmed either way.
func StripFence(s string) string {
	t := strings.TrimSpace(s)
	if m := outerFenceRe.FindStringSubmatch(t); m != nil {
		return strings.TrimSpace(m[1])
	}
	return t
}
