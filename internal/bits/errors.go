package bits

import "github.com/mewkiz/pkg/errutil"

// Kind identifies the class of failure that aborted a parse. It is the
// single failure taxonomy shared by the bit reader, the metadata parser and
// the frame parser.
type Kind int

// The error kinds a parse operation can fail with.
const (
	// KindIO indicates the underlying byte source failed or was truncated.
	KindIO Kind = iota
	// KindContent indicates a magic mismatch, missing sync code, or other
	// structurally malformed input.
	KindContent
	// KindReserved indicates a field held a reserved code, or a
	// mandatory-zero reserved bit was one.
	KindReserved
	// KindUTF8 indicates a variable-length "UTF-8" coded integer was not a
	// valid encoding.
	KindUTF8
	// KindParseInt indicates a parsed numeric field failed conversion.
	KindParseInt
	// KindTooLong indicates a bounded-length read exceeded its cap.
	KindTooLong
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IO"
	case KindContent:
		return "content"
	case KindReserved:
		return "reserved"
	case KindUTF8:
		return "UTF8"
	case KindParseInt:
		return "parse int"
	case KindTooLong:
		return "too long"
	default:
		return "unknown"
	}
}

// Error is the single failure type returned by every parsing operation in
// this module. Errors are never recovered or substituted with a default; a
// failure always propagates unchanged to the nearest caller.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Unwrap returns the underlying cause. For a KindIO error this is the
// errutil-annotated wrapper around the byte source's failure, not the bare
// I/O error itself.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewIOError wraps an I/O failure from the byte source as a KindIO Error.
func NewIOError(msg string, cause error) error {
	return &Error{Kind: KindIO, Msg: msg, Err: errutil.Err(cause)}
}

// NewContentError reports a structurally malformed field.
func NewContentError(msg string) error {
	return &Error{Kind: KindContent, Msg: msg}
}

// NewReservedError reports a reserved code or a mandatory-zero bit set to one.
func NewReservedError(msg string) error {
	return &Error{Kind: KindReserved, Msg: msg}
}

// NewUTF8Error reports an ill-formed "UTF-8" coded integer.
func NewUTF8Error(msg string) error {
	return &Error{Kind: KindUTF8, Msg: msg}
}

// NewParseIntError reports a numeric field that failed conversion.
func NewParseIntError(msg string, cause error) error {
	return &Error{Kind: KindParseInt, Msg: msg, Err: cause}
}

// NewTooLongError reports a bounded-length read that exceeded its cap.
func NewTooLongError(msg string) error {
	return &Error{Kind: KindTooLong, Msg: msg}
}
