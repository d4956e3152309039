package register

import "fmt"

// FatalError is a structural failure: the input cannot be processed at
// all and no partial table is produced. Missing required columns,
// unreadable files, and size limit violations are fatal.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string {
	return e.Reason
}

func fatalf(format string, args ...any) *FatalError {
	return &FatalError{Reason: fmt.Sprintf(format, args...)}
}

// RowError describes a single rejected row. Row errors accumulate
// across the whole pass; the remaining valid rows are still processed.
type RowError struct {
	Row    int    // spreadsheet-style row number (header is row 1)
	ID     string // record id when one could be read, may be empty
	Field  string
	Reason string
}

func (e RowError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("row %d (%s): %s: %s", e.Row, e.ID, e.Field, e.Reason)
	}
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Reason)
}

// Note is an informational notice attached to a row, such as a
// neutralized formula prefix. Notes are not errors and do not reject
// the row.
type Note struct {
	Row   int
	ID    string
	Field string
	Text  string
}

func (n Note) String() string {
	return fmt.Sprintf("row %d (%s): %s: %s", n.Row, n.ID, n.Field, n.Text)
}
