package mam

import (
	"fmt"
	goLog "log"
)

// errorImpl is the concrete type behind every error this package returns:
// a message, an optional wrapped cause, and whether the failure reflects a
// cryptographic verification failure rather than a malformed-input failure.
type errorImpl struct {
	msg    string
	crypto bool
	inner  error
}

func (err *errorImpl) Crypto() bool { return err.crypto }
func (err *errorImpl) Inner() error { return err.inner }

// Unwrap exposes the wrapped cause to errors.Is/errors.As, so callers can
// classify a returned error against ErrMalformedPayload, ErrInvalidHash or
// ErrInvalidSignature even where Authenticate returns a wrapped *errorImpl
// (its decode and bounds-check failures) rather than a sentinel directly.
func (err *errorImpl) Unwrap() error { return err.inner }

func (err *errorImpl) Error() string {
	if err.inner != nil {
		return fmt.Sprintf("%s: %s", err.msg, err.inner.Error())
	}
	return err.msg
}

// errorf formats a new Error.
func errorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...)}
}

// cryptoErrorf formats a new Error arising from a failed cryptographic
// check (bad signature, bad checksum), as opposed to a malformed encoding.
func cryptoErrorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), crypto: true}
}

// wrapErrorf formats a new Error that wraps another.
func wrapErrorf(err error, format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), inner: err}
}

// ErrMalformedPayload is returned by Parse when a payload cannot be decoded
// at all: a pascal length prefix ran off the end of the buffer, or a
// declared length doesn't leave enough trits for what follows it.
var ErrMalformedPayload = errorf("mam: malformed payload")

// ErrInvalidHash is returned by Parse when the decoded payload's bundle
// hash carries no usable security level: at least one of the first
// iss.NumFragments normalized digits is at iss.MaxDigit, so not even
// security level 1 is safe to trust.
var ErrInvalidHash = cryptoErrorf("mam: invalid hash, no usable security level")

// ErrInvalidSignature is returned by Parse when the recovered address
// fails to fold up to the claimed channel root through the supplied
// sibling path.
var ErrInvalidSignature = cryptoErrorf("mam: invalid signature")

type dummyLogger struct{}
type stdlibLogger struct{}

func (logger *dummyLogger) Logf(format string, a ...interface{}) {}

func (logger *stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

var log Logger = &dummyLogger{}

// Logger is the logging sink used for diagnostic messages (key derivation
// progress in Create). It is a no-op unless enabled.
type Logger interface {
	Logf(format string, a ...interface{})
}

// EnableLogging sends this package's log output to the standard log
// package. For more control, see SetLogger.
func EnableLogging() {
	SetLogger(&stdlibLogger{})
}

// SetLogger installs logger as the sink for this package's log output.
// Passing nil disables logging.
func SetLogger(logger Logger) {
	if logger == nil {
		log = &dummyLogger{}
		return
	}
	log = logger
}
