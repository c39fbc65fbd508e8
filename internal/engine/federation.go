package engine

import "time"

// FederationParameters carries the per-PDU-type heartbeat thresholds that
// drive the timeout decision algorithm, per spec.md section 4.6. Values
// mirror the SISO-REF-010 standardized HBT_PDU_* timing constants; callers
// load these from TOML via internal/gwconfig in production and pass
// DefaultFederationParameters in tests.
type FederationParameters struct {
	EntityStateHeartbeat time.Duration
	TransmitterHeartbeat time.Duration
	EmissionHeartbeat    time.Duration
	IFFHeartbeat         time.Duration
	DesignatorHeartbeat  time.Duration

	// FullUpdateMultiplier scales each heartbeat above to get the actual
	// timeout threshold the encoder enforces; default 2.4 per spec.md.
	FullUpdateMultiplier float64
}

// DefaultFederationParameters matches the SISO-REF-010 defaults used
// throughout the dis-rs/cdis-assemble reference implementation.
func DefaultFederationParameters() FederationParameters {
	return FederationParameters{
		EntityStateHeartbeat: 5 * time.Second,
		TransmitterHeartbeat: 2 * time.Second,
		EmissionHeartbeat:    10 * time.Second,
		IFFHeartbeat:         10 * time.Second,
		DesignatorHeartbeat:  5 * time.Second,
		FullUpdateMultiplier: 2.4,
	}
}

func (f FederationParameters) multiplier() float64 {
	if f.FullUpdateMultiplier <= 0 {
		return 2.4
	}
	return f.FullUpdateMultiplier
}

func (f FederationParameters) entityStateThreshold() time.Duration {
	return scale(f.EntityStateHeartbeat, f.multiplier())
}

func (f FederationParameters) transmitterThreshold() time.Duration {
	return scale(f.TransmitterHeartbeat, f.multiplier())
}

func (f FederationParameters) emissionThreshold() time.Duration {
	return scale(f.EmissionHeartbeat, f.multiplier())
}

func (f FederationParameters) iffThreshold() time.Duration {
	return scale(f.IFFHeartbeat, f.multiplier())
}

func (f FederationParameters) designatorThreshold() time.Duration {
	return scale(f.DesignatorHeartbeat, f.multiplier())
}

func scale(d time.Duration, mult float64) time.Duration {
	return time.Duration(float64(d) * mult)
}

// Mode selects whether the encoder always emits full updates or applies
// the partial-update heartbeat policy, per spec.md section 4.6.
type Mode int

const (
	// FullUpdate emits every optional field on every C-DIS PDU; no
	// encoder state is required and the decoder treats every PDU as
	// self-contained.
	FullUpdate Mode = iota
	// PartialUpdate omits optional fields that match the cached value
	// and fall within the heartbeat threshold.
	PartialUpdate
)

// Options configures a single Encode/Decode call.
type Options struct {
	Mode       Mode
	Federation FederationParameters
}

// StateChangeKind tags the side-channel result of an encode/decode call so
// the caller can apply cache mutations outside the pure codec function,
// per spec.md section 4.6.
type StateChangeKind int

const (
	// StateUpdate means a full update was emitted/consumed and the
	// cache's last-heartbeat was refreshed.
	StateUpdate StateChangeKind = iota
	// StateUnaffected means a partial update was emitted/consumed and
	// the cache's last-heartbeat is unchanged.
	StateUnaffected
)

// StateChange is the return-side tag threaded alongside every encode/decode
// result.
type StateChange struct {
	Kind StateChangeKind
}
