package rules

// Notice texts emitted when a whole rule source cannot be reduced or only one
// branch of it was captured. They appear in Result.Notices and, through the
// assembler, as in-band markers in generated output.
const (
	// NoticeDynamic is emitted when the rule definition is a bare dynamic
	// value (an unresolved variable or a method call) with no analyzable
	// structure.
	NoticeDynamic = "Dynamic rules detected"
	// NoticeComplex is emitted for richer but still unanalyzable expressions.
	NoticeComplex = "Complex rules detected"
	// NoticeConditional is emitted when only the first reachable branch of a
	// conditional rule set was analyzed.
	NoticeConditional = "Conditional rules detected: only the first branch was analyzed"
	// NoticeMatch is emitted when only the first case of a match construct
	// was analyzed.
	NoticeMatch = "Match-based rules detected: only the first case was analyzed"
)

// FieldRules is one field path with its ordered token list.
type FieldRules struct {
	Field  string
	Tokens []Token
}

// Result is the analyzer output for one rule source: an ordered field list
// plus any notices. A result with notices and no fields means the whole
// source was dynamic.
type Result struct {
	Fields  []FieldRules
	Notices []string
}

// Get returns the token list for a field path, or nil.
func (r *Result) Get(field string) []Token {
	for i := range r.Fields {
		if r.Fields[i].Field == field {
			return r.Fields[i].Tokens
		}
	}
	return nil
}

// Has reports whether the field path was analyzed.
func (r *Result) Has(field string) bool {
	for i := range r.Fields {
		if r.Fields[i].Field == field {
			return true
		}
	}
	return false
}

// set appends or overwrites a field entry, preserving insertion order for new
// fields and position for overwritten ones (later sources override earlier
// entries for the same field path).
func (r *Result) set(field string, tokens []Token) {
	for i := range r.Fields {
		if r.Fields[i].Field == field {
			r.Fields[i].Tokens = tokens
			return
		}
	}
	r.Fields = append(r.Fields, FieldRules{Field: field, Tokens: tokens})
}

// addNotice records a notice once.
func (r *Result) addNotice(notice string) {
	for _, n := range r.Notices {
		if n == notice {
			return
		}
	}
	r.Notices = append(r.Notices, notice)
}

// merge unions other into r in source order: fields unique to either side are
// preserved, overlapping field paths take other's tokens, and notices combine.
func (r *Result) merge(other *Result) {
	for _, f := range other.Fields {
		r.set(f.Field, f.Tokens)
	}
	for _, n := range other.Notices {
		r.addNotice(n)
	}
}
