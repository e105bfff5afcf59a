package jsonfmt

// Indent is the per-level indentation used by Pretty.
const Indent = "  "

// Result is the outcome of formatting one piece of text. When OK is false,
// Value holds the input unchanged.
type Result struct {
	Value string
	OK    bool
}

// Pretty parses raw and renders it with two-space indentation.
func Pretty(raw string) Result {
	return PrettyIndent(raw, Indent)
}

// PrettyIndent is Pretty with a caller supplied indent. An empty indent
// produces the compact rendering.
func PrettyIndent(raw, indent string) Result {
	value, err := Parse(raw)
	if err != nil {
		return Result{Value: raw}
	}
	return Result{Value: Encode(value, indent), OK: true}
}

// Format returns the pretty rendering of raw, or raw itself when it is not
// valid JSON.
func Format(raw string) string {
	return Pretty(raw).Value
}
