package build

// /////
// Message lanes

// MaxUnrewardedRelayerEntries is the largest number of unrewarded relayer
// entries that may accumulate at an inbound lane. A delivery transaction
// that would push the set past this is refused, because the confirmation
// transaction on the source chain must be able to enumerate the whole set.
const MaxUnrewardedRelayerEntries = 128

// MaxUnconfirmedMessages bounds the total number of delivered-but-unconfirmed
// messages tracked by an inbound lane, across all relayer entries.
const MaxUnconfirmedMessages = 8192

// MaxMessagesToPruneAtOnce caps how many confirmed outbound messages a single
// confirmation transaction will prune. Keeps confirmation weight predictable.
const MaxMessagesToPruneAtOnce = 10

// /////
// Bridged chain limits
//
// These mirror the bridged chain's block resource limits. A message that a
// bridged chain block cannot carry must be refused at send time.

// BridgedExtrinsicSizeLimit is the maximal size, in bytes, of a bridged
// chain transaction. 75% of a 5 MiB block.
const BridgedExtrinsicSizeLimit = 3_932_160

// BridgedExtrinsicWeightLimit is the maximal dispatch weight of a single
// bridged chain transaction.
const BridgedExtrinsicWeightLimit = 1_500_000_000_000

// /////
// Fee market

// DefaultAssignedRelayersNumber is how many of the lowest-quoting relayers
// back each order with their collateral.
const DefaultAssignedRelayersNumber = 3

// DefaultSlotBlocks is the length, in bridged block numbers, of one assigned
// relayer's priority slot.
const DefaultSlotBlocks = 50

// /////
// Header pool

// DefaultMaxFutureNumberDifference is how far above the best known block
// number an unsigned header may be before the pool refuses to hold it.
const DefaultMaxFutureNumberDifference = 10
