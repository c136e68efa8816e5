package apperrors

// appError implements Error. Every derivation returns a fresh value so that
// package-level sentinels are never mutated by callers.
type appError struct {
	msg        string
	base       Error
	causes     []error
	statuscode int
}

func (e *appError) Error() string {
	return e.msg
}

func (e *appError) Unwrap() []error {
	return e.causes
}

func (e *appError) derive() *appError {
	return &appError{
		msg:        e.msg,
		base:       e,
		statuscode: e.statuscode,
	}
}

func (e *appError) New(msg string) Error {
	d := e.derive()
	d.msg = msg
	return d
}

func (e *appError) Msg(msg string) Error {
	d := e.derive()
	d.msg = msg
	return d
}

func (e *appError) Err(errs ...error) Error {
	d := e.derive()
	d.causes = append(d.causes, errs...)
	return d
}

func (e *appError) MsgErr(msg string, errs ...error) Error {
	d := e.derive()
	d.msg = msg
	d.causes = append(d.causes, errs...)
	return d
}

func (e *appError) Is(target error) bool {
	if e == target || e.base == target {
		return true
	}
	if e.base != nil && e.base.Is(target) {
		return true
	}
	for _, err := range e.causes {
		if err == target {
			return true
		}
	}
	return false
}

func (e *appError) SetStatusCode(code int) Error {
	d := e.derive()
	d.statuscode = code
	return d
}

func (e *appError) StatusCode() int {
	return e.statuscode
}

// New creates a root Error with the given message.
func New(msg string) Error {
	return &appError{msg: msg}
}
