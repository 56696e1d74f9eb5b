package model

// CodecError is the error type Generate returns. Code is one of the fixed
// taxonomy values below and is stable for callers to switch on; Msg is a
// human-readable detail.
type CodecError struct {
	Code string
	Msg  string
}

func (e *CodecError) Error() string {
	return e.Code + ": " + e.Msg
}

const (
	CodeInvalidKey          = "InvalidKey"
	CodeParameterOutOfRange = "ParameterOutOfRange"
	CodeDeadlineInPast      = "DeadlineInPast"
	CodeDeadlineTooFar      = "DeadlineTooFar"
	CodeMalformed           = "Malformed"
)

func newErr(code, msg string) *CodecError {
	return &CodecError{Code: code, Msg: msg}
}

func ErrInvalidKey(msg string) *CodecError          { return newErr(CodeInvalidKey, msg) }
func ErrParameterOutOfRange(msg string) *CodecError { return newErr(CodeParameterOutOfRange, msg) }
func ErrDeadlineInPast(msg string) *CodecError      { return newErr(CodeDeadlineInPast, msg) }
func ErrDeadlineTooFar(msg string) *CodecError      { return newErr(CodeDeadlineTooFar, msg) }
func ErrMalformed(msg string) *CodecError           { return newErr(CodeMalformed, msg) }

// Is lets errors.Is match on Code rather than pointer identity, so callers
// can write errors.Is(err, model.ErrInvalidKey("")) to classify an error
// without caring about its message.
func (e *CodecError) Is(target error) bool {
	t, ok := target.(*CodecError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
