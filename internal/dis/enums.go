package dis

// The SISO enumeration tables (entity kinds, countries, munitions, radio
// modulations, and the rest) are external reference data, not protocol
// structure. Rather than vendor a multi-thousand-row table this package
// carries these fields as opaque integer-backed identifiers: callers that
// need the human-readable name look it up in whatever SISO-EBV release
// they've deployed against, keyed by these same numeric codes.

// PduType identifies the body variant of a PDU, per SISO-REF-010 section 4.
type PduType uint8

const (
	PduTypeOther               PduType = 0
	PduTypeEntityState         PduType = 1
	PduTypeFire                PduType = 2
	PduTypeDetonation          PduType = 3
	PduTypeCollision           PduType = 4
	PduTypeServiceRequest      PduType = 5
	PduTypeResupplyOffer       PduType = 6
	PduTypeResupplyReceived    PduType = 7
	PduTypeResupplyCancel      PduType = 8
	PduTypeRepairComplete      PduType = 9
	PduTypeRepairResponse      PduType = 10
	PduTypeCreateEntity        PduType = 11
	PduTypeRemoveEntity        PduType = 12
	PduTypeStartResume         PduType = 13
	PduTypeStopFreeze          PduType = 14
	PduTypeAcknowledge         PduType = 15
	PduTypeActionRequest       PduType = 16
	PduTypeActionResponse      PduType = 17
	PduTypeDataQuery           PduType = 18
	PduTypeSetData             PduType = 19
	PduTypeData                PduType = 20
	PduTypeEventReport         PduType = 21
	PduTypeComment             PduType = 22
	PduTypeElectromagneticEmission PduType = 23
	PduTypeDesignator          PduType = 24
	PduTypeTransmitter         PduType = 25
	PduTypeSignal              PduType = 26
	PduTypeReceiver            PduType = 27
	PduTypeIFF                 PduType = 28
)

// ProtocolFamily groups PDU types per SISO-REF-010 section 3.
type ProtocolFamily uint8

const (
	ProtocolFamilyOther                   ProtocolFamily = 0
	ProtocolFamilyEntityInformation       ProtocolFamily = 1
	ProtocolFamilyWarfare                 ProtocolFamily = 2
	ProtocolFamilyLogisticsSupply         ProtocolFamily = 4
	ProtocolFamilySimulationManagement    ProtocolFamily = 5
	ProtocolFamilyDistributedEmission     ProtocolFamily = 6
)

// ForceId is an opaque force-affiliation code (friendly/opposing/neutral/...).
type ForceId uint8

// EntityKind, Domain, Country, Category, Subcategory, Specific, Extra
// jointly form the 7-component EntityType record. They are opaque codes
// looked up against the deployed SISO enumeration release.
type (
	EntityKind  uint8
	Domain      uint8
	Country     uint16
	Category    uint8
	Subcategory uint8
	Specific    uint8
	Extra       uint8
)

// DeadReckoningAlgorithm selects the extrapolation model a receiver should
// apply between EntityState updates.
type DeadReckoningAlgorithm uint8

// RadioCategory, TransmitState and InputSource are opaque Transmitter PDU
// enumerations.
type (
	RadioCategory uint8
	TransmitState uint8
	InputSource   uint8
)

// StopFreezeReason and FrozenBehavior are the opaque reason/behavior codes
// carried by the StopFreeze PDU.
type (
	StopFreezeReason uint8
	FrozenBehavior   uint8
)

// AcknowledgeFlag and ResponseFlag are opaque Acknowledge PDU enumerations.
type (
	AcknowledgeFlag uint16
	ResponseFlag    uint16
)

// CollisionType distinguishes an inelastic collision from an elastic one.
// SISO-REF-010 documents exactly these two values for this field.
type CollisionType uint8

const (
	CollisionTypeInelastic CollisionType = 0
	CollisionTypeElastic   CollisionType = 1
)

// DesignatorSystemName and DesignatorCode are opaque Designator PDU fields.
type (
	DesignatorSystemName uint16
	DesignatorCode       uint16
)

// IFFSystemType, IFFSystemName and IFFSystemMode are opaque IFF layer-1
// enumerations.
type (
	IFFSystemType uint8
	IFFSystemName uint8
	IFFSystemMode uint8
)
