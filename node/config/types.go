package config

// // NOTE: ONLY PUT STRUCT DEFINITIONS IN THIS FILE

// Bridge is the configuration of one bridge deployment: this chain plus a
// single bridged chain, connected by message lanes.
type Bridge struct {
	Chain     ChainConfig
	Messages  MessagesConfig
	FeeMarket FeeMarketConfig
	Finality  FinalityConfig
	Journal   JournalConfig
}

type ChainConfig struct {
	// SelfChainID is this chain's bridge identity. Exactly 4 bytes.
	SelfChainID string
	// BridgedChainID is the counterpart chain's bridge identity. Exactly
	// 4 bytes.
	BridgedChainID string
	// SpecVersion is this chain's runtime spec version. Bridged payloads
	// declaring any other version are refused before their call is even
	// decoded.
	SpecVersion uint32
}

type MessagesConfig struct {
	// BridgedMessagesPallet names the bridged chain's messages pallet as
	// it appears in proved storage keys, e.g. "BridgeCrabMessages".
	BridgedMessagesPallet string

	// ActiveLanes lists the lanes this deployment serves. 4 bytes each.
	ActiveLanes []string

	// MaxPendingMessages caps sent-but-unconfirmed messages per outbound
	// lane; further sends are refused until confirmations catch up.
	MaxPendingMessages uint64

	// MaxBridgedExtrinsicSize mirrors the bridged chain's transaction size
	// limit, in bytes. Payloads above 2/3 of it are refused at send time,
	// leaving room for the delivery transaction envelope.
	MaxBridgedExtrinsicSize uint64

	// MaxBridgedExtrinsicWeight mirrors the bridged chain's transaction
	// weight limit. Declared dispatch weights above 1/2 of it are refused.
	MaxBridgedExtrinsicWeight uint64

	// MaxUnrewardedRelayerEntries caps distinct relayer entries awaiting
	// confirmation at an inbound lane.
	MaxUnrewardedRelayerEntries uint64

	// MaxUnconfirmedMessages caps total delivered-but-unconfirmed messages
	// at an inbound lane.
	MaxUnconfirmedMessages uint64

	// MaxMessagesToPruneAtOnce caps how many settled messages one
	// confirmation prunes from outbound storage.
	MaxMessagesToPruneAtOnce uint64
}

type FeeMarketConfig struct {
	// AssignedRelayersNumber is how many of the lowest-quoting enrolled
	// relayers back each order with collateral. The market is closed while
	// fewer are enrolled.
	AssignedRelayersNumber uint64

	// SlotBlocks is the length, in bridged block numbers, of each assigned
	// relayer's priority delivery slot.
	SlotBlocks int64

	// CollateralPerOrder is the collateral one order locks per assigned
	// relayer, in base units.
	CollateralPerOrder uint64

	// BaseFeeRatio is the portion of an order's fee handled by the slot
	// reward scheme; the rest of an in-slot order's fee goes to treasury.
	// Parts per million.
	BaseFeeRatio uint32

	// AssignedRelayersRewardRatio is the slot relayer's share of the base
	// fee. Parts per million.
	AssignedRelayersRewardRatio uint32

	// MessageRelayersRewardRatio is the delivery relayer's share of what
	// remains after the slot reward. Parts per million.
	MessageRelayersRewardRatio uint32

	// ConfirmRelayersRewardRatio is the confirmation relayer's share of
	// what remains after the slot reward. Parts per million; together with
	// MessageRelayersRewardRatio it must sum to one million.
	ConfirmRelayersRewardRatio uint32

	// AssignedRelayerSlashRatio is the share of an assigned relayer's
	// locked collateral slashed when its slot is missed. Parts per million.
	AssignedRelayerSlashRatio uint32

	// SlashProtect caps the total slash charged to one relayer for one
	// order, in base units. Zero disables the cap.
	SlashProtect uint64

	// DelaySlashPerBlock grows the slash by this many base units for every
	// block a delivery lands past the final deadline.
	DelaySlashPerBlock uint64
}

type FinalityConfig struct {
	// BridgedParasPallet names the bridged relay chain's parachains pallet
	// as it appears in proved storage keys, e.g. "Paras". Only used when
	// the bridged chain is a parachain.
	BridgedParasPallet string

	// BridgedParaID is the parachain id of the bridged chain on its relay
	// chain. Zero means the bridged chain is anchored directly.
	BridgedParaID uint32

	// MaxFutureNumberDifference is how far above the best known block
	// number an unsigned header may be before the pool refuses to hold it.
	MaxFutureNumberDifference int64

	// HeaderCacheSize is the entry count of the finalized-header cache.
	HeaderCacheSize int
}

type JournalConfig struct {
	// Events of the form: "system1:event1,system1:event2[,...]"
	DisabledEvents string
}
