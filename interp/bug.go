package interp

import "github.com/pkg/errors"

// bugf reports an implementation bug: a tree the core should never be
// handed (ill-typed, an unresolved symbol, a break escaping its loop).
// Unlike Panic, a bug is not a language-level fault — it is wrapped with
// a Go stack trace via pkg/errors so a report can point back at the
// defect in the tree or in this package, not at a line of hush source.
func bugf(format string, args ...interface{}) error {
	return errors.WithStack(errors.Errorf(format, args...))
}
