package errors

import "errors"

// Failure classes of the retrieval pipeline. Callers branch on these with
// errors.Is, so every stage wraps its underlying error with exactly one of
// them.
var (
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrFetch              = errors.New("transcript fetch failed")
	ErrIndex              = errors.New("similarity index failed")
	ErrRerank             = errors.New("rerank failed")
	ErrChat               = errors.New("chat completion failed")
	ErrInvalid            = errors.New("invalid request")
)

func IsTranscriptNotFound(err error) bool {
	return errors.Is(err, ErrTranscriptNotFound)
}

func IsFetchFailure(err error) bool {
	return errors.Is(err, ErrFetch)
}

func IsIndexFailure(err error) bool {
	return errors.Is(err, ErrIndex)
}

func IsChatFailure(err error) bool {
	return errors.Is(err, ErrChat)
}
