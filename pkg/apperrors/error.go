package apperrors

// Error is a chainable error that keeps its ancestry for errors.Is matching
// and carries an optional HTTP status code.
type Error interface {
	Error() string
	New(msg string) Error
	Msg(msg string) Error
	Err(errs ...error) Error
	MsgErr(msg string, errs ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetStatusCode(code int) Error
	StatusCode() int
}
