package cdis

import "fmt"

// InsufficientBufferSizeError is returned when serializing a PDU would
// exceed the 1500-octet C-DIS MTU.
type InsufficientBufferSizeError struct {
	NeededBits    int
	AvailableBits int
}

func (e *InsufficientBufferSizeError) Error() string {
	return fmt.Sprintf("cdis: insufficient buffer size: need %d bits, have %d", e.NeededBits, e.AvailableBits)
}

// InsufficientPduLengthError is returned when a parse runs past the
// bounds of the borrowed bit slice.
type InsufficientPduLengthError struct {
	ExpectedBits int
	FoundBits    int
}

func (e *InsufficientPduLengthError) Error() string {
	return fmt.Sprintf("cdis: insufficient pdu length: expected %d bits, found %d", e.ExpectedBits, e.FoundBits)
}

// UnsupportedPduError is returned for a PDU type with no C-DIS body
// codec registered.
type UnsupportedPduError struct {
	PduTypeValue uint8
}

func (e *UnsupportedPduError) Error() string {
	return fmt.Sprintf("cdis: unsupported pdu type %d", e.PduTypeValue)
}

// ParseError is a malformed-field error with a textual reason and the
// bit offset at which parsing failed.
type ParseError struct {
	Reason   string
	BitOffset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cdis: parse error at bit %d: %s", e.BitOffset, e.Reason)
}

// StringNotASCIIError is returned when a 6-bit-packed field (marking,
// specification string) is given a character outside the packable
// range, per spec.md section 3.4's marking record.
type StringNotASCIIError struct {
	Field string
}

func (e *StringNotASCIIError) Error() string {
	return fmt.Sprintf("cdis: field %q is not packable 6-bit ASCII", e.Field)
}

// StringTooLongError is returned when a 6-bit-packed field exceeds the
// maximum character count its length prefix can carry.
type StringTooLongError struct {
	Field string
	Max   int
}

func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("cdis: field %q exceeds maximum length %d", e.Field, e.Max)
}

// IffUndeterminedSystemTypeError is returned when an IFF Layer 1 System
// ID's System Type field carries a value the classifier has no mapping
// for, per spec.md section 3.4's IFF variant.
type IffUndeterminedSystemTypeError struct {
	SystemType uint8
}

func (e *IffUndeterminedSystemTypeError) Error() string {
	return fmt.Sprintf("cdis: iff: undetermined system type %d", e.SystemType)
}

// IffIncorrectSystemTypeError is returned when an IFF Layer 1 System
// ID's System Type is recognized but is not valid for the System Name
// it is paired with.
type IffIncorrectSystemTypeError struct {
	SystemType uint8
	SystemName uint16
}

func (e *IffIncorrectSystemTypeError) Error() string {
	return fmt.Sprintf("cdis: iff: system type %d is not valid for system name %d", e.SystemType, e.SystemName)
}
