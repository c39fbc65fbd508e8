package engine

import (
	"time"

	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/timeutil"
)

// entityStateEntry is the per-entity cache record kept by both the
// EntityState encoder and decoder, per spec.md section 3.5. Ownership is
// per-direction and exclusive: an EncoderState's entries are never read by
// a decoder and vice versa.
type entityStateEntry struct {
	lastHeartbeat time.Time
	body          dis.EntityStateBody
}

// EntityStateCache holds the heartbeat/cached-body state for one direction
// (encode or decode) of EntityState traffic. It is not safe for concurrent
// use from multiple goroutines; per spec.md section 4.6 each direction is
// owned by exactly one single-threaded task.
type EntityStateCache struct {
	clock   timeutil.Clock
	entries map[dis.EntityId]entityStateEntry
}

// NewEntityStateCache constructs an empty cache. A nil clock defaults to
// timeutil.RealClock{}.
func NewEntityStateCache(clock timeutil.Clock) *EntityStateCache {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &EntityStateCache{clock: clock, entries: make(map[dis.EntityId]entityStateEntry)}
}

// genericEntry is the shared cache record shape for the whole-body
// full/partial PDU types (Transmitter, IFF, Designator, ElectromagneticEmission),
// keyed by the originating/emitting entity id.
type genericEntry[T any] struct {
	lastHeartbeat time.Time
	body          T
}

// GenericCache holds per-entity heartbeat/body state for a PDU type whose
// engine-level policy operates on the whole decoded body rather than
// diffing individual named fields, per spec.md section 4.6 ("Transmitter,
// IFF, Designator: full/partial policy on the whole body; no sub-structure
// re-indexing").
type GenericCache[T any] struct {
	clock   timeutil.Clock
	entries map[dis.EntityId]genericEntry[T]
}

// NewGenericCache constructs an empty cache for body type T.
func NewGenericCache[T any](clock timeutil.Clock) *GenericCache[T] {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &GenericCache[T]{clock: clock, entries: make(map[dis.EntityId]genericEntry[T])}
}

// EmissionParameterCache holds, per emitting entity, the table of
// FundamentalParameterData values ElectromagneticEmission beams have
// referenced by index. This is the sub-structure re-indexing
// GenericCache deliberately does not provide: EE's beams name their
// fundamental/beam-data record by ParameterIndex rather than repeating
// it, so a beam whose data is unchanged from a prior appearance at the
// same index can omit it on the wire entirely.
type EmissionParameterCache struct {
	tables map[dis.EntityId][]dis.FundamentalParameterData
}

// NewEmissionParameterCache constructs an empty cache.
func NewEmissionParameterCache() *EmissionParameterCache {
	return &EmissionParameterCache{tables: make(map[dis.EntityId][]dis.FundamentalParameterData)}
}

// indexOf returns the index within entity's table holding data, or -1 if
// no such entry exists yet.
func (c *EmissionParameterCache) indexOf(entity dis.EntityId, data dis.FundamentalParameterData) int {
	for i, existing := range c.tables[entity] {
		if existing == data {
			return i
		}
	}
	return -1
}

// store records data at index within entity's table, growing the table
// as needed.
func (c *EmissionParameterCache) store(entity dis.EntityId, index uint16, data dis.FundamentalParameterData) {
	table := c.tables[entity]
	for len(table) <= int(index) {
		table = append(table, dis.FundamentalParameterData{})
	}
	table[index] = data
	c.tables[entity] = table
}

// lookup returns the data previously stored at index within entity's
// table, or the zero value if none was ever stored there.
func (c *EmissionParameterCache) lookup(entity dis.EntityId, index uint16) dis.FundamentalParameterData {
	table := c.tables[entity]
	if int(index) >= len(table) {
		return dis.FundamentalParameterData{}
	}
	return table[index]
}

// nextIndex returns the index a newly appended table entry for entity
// would occupy.
func (c *EmissionParameterCache) nextIndex(entity dis.EntityId) uint16 {
	return uint16(len(c.tables[entity]))
}
