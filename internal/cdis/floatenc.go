package cdis

import (
	"math"

	"github.com/dis-interop/cdis-gateway/internal/bitio"
)

// CDISFloat is a compressed floating-point field: a signed mantissa and a
// signed base-10 exponent, value = mantissa * 10^exponent, per
// spec.md section 3.1. The minimum representable mantissa at exponent
// zero is reserved as an escape: when that exact pattern appears, the
// field instead carries the literal IEEE-754 bits of the original f32,
// for values the mantissa/exponent scheme cannot represent within
// tolerance.
type CDISFloat struct {
	MantissaBits int
	ExponentBits int
}

// frequencyFloatCodec is the width cdis-assemble's FrequencyFloat uses
// (src/electromagnetic_emission/model.rs): a 17-bit mantissa and a
// 4-bit exponent, sized for frequency and frequency-range fields
// reported in Hz. ElectromagneticEmission's Frequency/FrequencyRange
// use it; Transmitter's Frequency does not, being written as a raw
// integer of transmitterFrequencyBits.
var frequencyFloatCodec = CDISFloat{MantissaBits: 17, ExponentBits: 4}

// pulseWidthFloatCodec is the width cdis-assemble's PulseWidthFloat uses
// (src/electromagnetic_emission/model.rs): a 14-bit mantissa and a
// 3-bit exponent, sized for pulse-width-class fields reported in
// microseconds. ElectromagneticEmission's PulseWidth and Transmitter's
// TransmitFrequencyBandwidth (a width-class quantity with no retrieved
// bit-width constants of its own) both use it.
var pulseWidthFloatCodec = CDISFloat{MantissaBits: 14, ExponentBits: 3}

// genericFloatCodec covers the remaining ElectromagneticEmission
// fundamental-parameter and beam fields (ERP, PRF, beam azimuth/
// elevation center and sweep, sweep sync) for which no per-field
// MANTISSA_BITS/EXPONENT_BITS constant pair was found in the retrieved
// cdis-assemble source. 8-bit mantissa, 6-bit exponent is a deliberate
// default, not a citation: it keeps one decimal digit of exponent range
// beyond these fields' realistic magnitude swing while the mantissa
// carries ~2.5 significant decimal digits.
var genericFloatCodec = CDISFloat{MantissaBits: 8, ExponentBits: 6}

func (f CDISFloat) mantissaMin() int64 { return -(int64(1) << uint(f.MantissaBits-1)) }
func (f CDISFloat) mantissaMax() int64 { return (int64(1) << uint(f.MantissaBits-1)) - 1 }
func (f CDISFloat) exponentMin() int64 { return -(int64(1) << uint(f.ExponentBits-1)) }
func (f CDISFloat) exponentMax() int64 { return (int64(1) << uint(f.ExponentBits-1)) - 1 }
func (f CDISFloat) escapeMantissa() int64 { return f.mantissaMin() }

func (f CDISFloat) bitSize() int { return f.MantissaBits + f.ExponentBits }

func (f CDISFloat) write(w *bitio.Writer, value float32) error {
	mantissa, exponent, ok := f.quantize(float64(value))
	if !ok {
		if err := w.WriteSigned(f.MantissaBits, f.escapeMantissa()); err != nil {
			return err
		}
		if err := w.WriteSigned(f.ExponentBits, 0); err != nil {
			return err
		}
		return w.WriteUnsigned(32, uint64(math.Float32bits(value)))
	}
	if err := w.WriteSigned(f.MantissaBits, mantissa); err != nil {
		return err
	}
	return w.WriteSigned(f.ExponentBits, exponent)
}

func (f CDISFloat) read(r *bitio.Reader) (float32, error) {
	mantissa, err := r.TakeSigned(f.MantissaBits)
	if err != nil {
		return 0, err
	}
	exponent, err := r.TakeSigned(f.ExponentBits)
	if err != nil {
		return 0, err
	}
	if mantissa == f.escapeMantissa() && exponent == 0 {
		raw, err := r.Take(32)
		if err != nil {
			return 0, err
		}
		return math.Float32frombits(uint32(raw)), nil
	}
	return float32(float64(mantissa) * math.Pow(10, float64(exponent))), nil
}

// quantize finds the smallest exponent (greatest precision) such that
// value/10^exponent, rounded half-to-even, fits the mantissa range.
func (f CDISFloat) quantize(value float64) (mantissa int64, exponent int64, ok bool) {
	if value == 0 {
		return 0, 0, true
	}
	lo, hi := float64(f.mantissaMin()), float64(f.mantissaMax())
	escape := float64(f.escapeMantissa())
	for exp := f.exponentMin(); exp <= f.exponentMax(); exp++ {
		scaled := value / math.Pow(10, float64(exp))
		rounded := math.RoundToEven(scaled)
		if rounded >= lo && rounded <= hi && rounded != escape {
			return int64(rounded), exp, true
		}
	}
	return 0, 0, false
}
