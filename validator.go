package rtlweaver

import "strings"

// Validator checks one patch before it may be merged.
type Validator interface {
	// Validate returns nil if the code is acceptable for the region,
	// or an error describing why it must be rejected.
	Validate(region string, code string) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(region string, code string) error

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(region, code string) error {
	return f(region, code)
}

// DefaultForbiddenTokens rejects file I/O, foreign-function interfaces,
// process invocation and external file inclusion in generated code. It is a
// coarse static gate over surface syntax, not a sandboxing guarantee, and it
// is a policy choice: replace it per engine with WithForbiddenTokens.
var DefaultForbiddenTokens = []string{
	"$fopen",
	"$fread",
	"$system",
	`import "DPI-C"`,
	"`include",
}

// TokenDenylist fails any patch whose code contains one of Tokens.
type TokenDenylist struct {
	Tokens []string
}

// Validate implements the Validator interface.
func (d TokenDenylist) Validate(region, code string) error {
	for _, tok := range d.Tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(code, tok) {
			return &ForbiddenTokenError{Region: region, Token: tok}
		}
	}
	return nil
}
