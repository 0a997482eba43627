package scoring

import "strings"

// Context carries the caller-supplied signals consulted during scoring:
// boolean flags keyed by flattened condition names, plus optional free-text
// description matched against the keyword buckets. The zero value is a
// valid empty context.
type Context struct {
	Flags       map[string]bool
	Description string
}

// NewContext builds a Context, flattening every flag key so lookups match
// regardless of the caller's casing and spacing.
func NewContext(flags map[string]bool, description string) Context {
	if len(flags) == 0 {
		return Context{Description: description}
	}
	normalized := make(map[string]bool, len(flags))
	for k, v := range flags {
		normalized[NormalizeFlag(k)] = v
	}
	return Context{Flags: normalized, Description: description}
}

// NormalizeFlag flattens a condition key: trimmed, lowercased, spaces
// replaced with underscores. "is_customer_interface and is_web" becomes
// "is_customer_interface_and_is_web".
func NormalizeFlag(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
}

// Flag reports whether the named flag is set. Unknown keys are false, never
// an error; the key is flattened before lookup.
func (c Context) Flag(key string) bool {
	if c.Flags == nil {
		return false
	}
	return c.Flags[NormalizeFlag(key)]
}
