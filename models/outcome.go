package models

// OutcomeKind distinguishes the three ways a page parse can end.
type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeEmpty   OutcomeKind = "empty"
	OutcomeFailure OutcomeKind = "failed"
	OutcomeSkipped OutcomeKind = "skipped"
)

// ParseOutcome is the result of parsing one entity (player, squad page).
// A missing mandatory table or a fetch error yields a Failure; a page
// that parsed cleanly but produced zero data rows yields Empty.
type ParseOutcome struct {
	Kind      OutcomeKind
	Rows      int
	Columns   int
	FilePath  string
	ErrorType string
	Err       error
}

func SuccessOutcome(rows, columns int, filePath string) ParseOutcome {
	return ParseOutcome{Kind: OutcomeSuccess, Rows: rows, Columns: columns, FilePath: filePath}
}

func EmptyOutcome() ParseOutcome {
	return ParseOutcome{Kind: OutcomeEmpty}
}

func FailureOutcome(errorType string, err error) ParseOutcome {
	return ParseOutcome{Kind: OutcomeFailure, ErrorType: errorType, Err: err}
}

func SkippedOutcome(filePath string) ParseOutcome {
	return ParseOutcome{Kind: OutcomeSkipped, FilePath: filePath}
}

// Failed reports whether the outcome should count against the run.
func (o ParseOutcome) Failed() bool { return o.Kind == OutcomeFailure }
