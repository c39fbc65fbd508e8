package dis

import "fmt"

// InsufficientHeaderLengthError is returned when fewer bytes than a DIS
// header requires are available.
type InsufficientHeaderLengthError struct {
	Found int
}

func (e *InsufficientHeaderLengthError) Error() string {
	return fmt.Sprintf("dis: insufficient header length: found %d bytes, need at least %d", e.Found, MinHeaderLength)
}

// InsufficientPduLengthError is returned when the header declares more
// bytes than are actually available in the buffer.
type InsufficientPduLengthError struct {
	Expected int
	Found    int
}

func (e *InsufficientPduLengthError) Error() string {
	return fmt.Sprintf("dis: insufficient pdu length: header declares %d bytes, found %d", e.Expected, e.Found)
}

// InsufficientBufferSizeError is returned when serialization would exceed
// the destination buffer or protocol MTU.
type InsufficientBufferSizeError struct {
	Needed    int
	Available int
}

func (e *InsufficientBufferSizeError) Error() string {
	return fmt.Sprintf("dis: insufficient buffer size: need %d bytes, have %d", e.Needed, e.Available)
}

// UnsupportedPduError is returned when a PDU type has no body
// implementation and cannot be round-tripped structurally (it is still
// carried as an Other body).
type UnsupportedPduError struct {
	PduType PduType
}

func (e *UnsupportedPduError) Error() string {
	return fmt.Sprintf("dis: unsupported pdu type %d", e.PduType)
}

// ParseError is a malformed-field error, carrying a textual reason.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return fmt.Sprintf("dis: parse error: %s", e.Reason) }

// StringNotASCIIError is returned when a marking or specification string
// contains non-ASCII bytes.
type StringNotASCIIError struct {
	Field string
}

func (e *StringNotASCIIError) Error() string {
	return fmt.Sprintf("dis: field %q is not ASCII", e.Field)
}

// StringTooLongError is returned when a marking or specification string
// exceeds its fixed-width bound.
type StringTooLongError struct {
	Field string
	Max   int
}

func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("dis: field %q exceeds maximum length %d", e.Field, e.Max)
}
