// Package engine implements the stateful bridge between full-fidelity DIS
// PDUs and their compressed C-DIS counterparts: per-entity heartbeat caches,
// the FullUpdate/PartialUpdate policy, and the timeout decision algorithm
// that governs when an encoder must emit every optional field again.
package engine

import (
	"fmt"

	"github.com/dis-interop/cdis-gateway/internal/dis"
)

// RejectedUnsupportedDisPduError is returned by Encode when the supplied
// DIS body has no C-DIS counterpart wired into this engine.
type RejectedUnsupportedDisPduError struct {
	PduType dis.PduType
}

func (e *RejectedUnsupportedDisPduError) Error() string {
	return fmt.Sprintf("engine: rejected unsupported dis pdu type %d", e.PduType)
}

// RejectedUnsupportedCDisPduError is returned by Decode for the symmetric
// case on the C-DIS side.
type RejectedUnsupportedCDisPduError struct {
	PduType dis.PduType
}

func (e *RejectedUnsupportedCDisPduError) Error() string {
	return fmt.Sprintf("engine: rejected unsupported cdis pdu type %d", e.PduType)
}

// ParseError reports a malformed bit stream or a cache-consistency
// violation (partial update for an entity the decoder has never seen a
// full update for).
type ParseError struct {
	Reason   string
	EntityID dis.EntityId
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("engine: parse error: %s (entity %+v)", e.Reason, e.EntityID)
}
