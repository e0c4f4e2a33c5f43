package errcode

const (
	ErrUnknown = 20000000 + iota
	ErrInvalid
	ErrNotFound
	ErrFetchFailed
	ErrIndexUnavailable
	ErrChatUnavailable
	ErrInternal
)
