package domain

import "strings"

// Record is one CSV data row keyed by header column name. Header names are
// matched case-sensitively. Dynamic-shaped data stays confined to this type;
// everything downstream of normalization is strongly typed.
type Record map[string]string

// Resolve scans aliases in order and returns the first present, non-blank
// value after whitespace trimming. It fails with MissingColumnError naming
// every alias checked when none match.
func (r Record) Resolve(aliases ...string) (string, error) {
	for _, alias := range aliases {
		if v, ok := r[alias]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, nil
			}
		}
	}
	return "", &MissingColumnError{Aliases: aliases}
}

// Optional returns the trimmed value for name, or nil when the column is
// absent or blank.
func (r Record) Optional(name string) *string {
	v, ok := r[name]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
