package config

import (
	"github.com/darwinia-network/darwinia-bridge-substrate/build"
)

// DefaultBridge returns the default config
func DefaultBridge() *Bridge {
	return &Bridge{
		Chain: ChainConfig{
			SelfChainID:    "dwin",
			BridgedChainID: "crab",
			SpecVersion:    1,
		},
		Messages: MessagesConfig{
			BridgedMessagesPallet:       "BridgeDarwiniaMessages",
			ActiveLanes:                 []string{"\x00\x00\x00\x00"},
			MaxPendingMessages:          1024,
			MaxBridgedExtrinsicSize:     build.BridgedExtrinsicSizeLimit,
			MaxBridgedExtrinsicWeight:   build.BridgedExtrinsicWeightLimit,
			MaxUnrewardedRelayerEntries: build.MaxUnrewardedRelayerEntries,
			MaxUnconfirmedMessages:      build.MaxUnconfirmedMessages,
			MaxMessagesToPruneAtOnce:    build.MaxMessagesToPruneAtOnce,
		},
		FeeMarket: FeeMarketConfig{
			AssignedRelayersNumber:      build.DefaultAssignedRelayersNumber,
			SlotBlocks:                  build.DefaultSlotBlocks,
			CollateralPerOrder:          100_000,
			BaseFeeRatio:                400_000,
			AssignedRelayersRewardRatio: 600_000,
			MessageRelayersRewardRatio:  800_000,
			ConfirmRelayersRewardRatio:  200_000,
			AssignedRelayerSlashRatio:   200_000,
			SlashProtect:                1_000_000,
			DelaySlashPerBlock:          2,
		},
		Finality: FinalityConfig{
			BridgedParasPallet:        "Paras",
			BridgedParaID:             0,
			MaxFutureNumberDifference: build.DefaultMaxFutureNumberDifference,
			HeaderCacheSize:           4096,
		},
		Journal: JournalConfig{},
	}
}
