package feemarket

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/require"

	ds "github.com/ipfs/go-datastore"
	ds_sync "github.com/ipfs/go-datastore/sync"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

var testLane = mustLane("ln00")

func mustLane(s string) types.LaneID {
	l, err := types.LaneIDFromString(s)
	if err != nil {
		panic(err)
	}
	return l
}

func testAddr(t *testing.T, name string) address.Address {
	addr, err := address.NewActorAddress([]byte(name))
	require.NoError(t, err)
	return addr
}

// testConfig keeps the arithmetic legible: a 100 fee splits into base fee
// 40, slot reward 20 and an 16/4 message/confirm split; one slash takes
// 200 of a 1000 collateral.
func testConfig() Config {
	return Config{
		AssignedRelayersNumber:      3,
		SlotBlocks:                  50,
		CollateralPerOrder:          types.NewInt(1000),
		BaseFeeRatio:                400_000,
		AssignedRelayersRewardRatio: 500_000,
		MessageRelayersRewardRatio:  800_000,
		ConfirmRelayersRewardRatio:  200_000,
		AssignedRelayerSlashRatio:   200_000,
		SlashProtect:                types.NewInt(0),
	}
}

type testEnv struct {
	t      *testing.T
	market *Market
	store  *Store
	ledger *Ledger

	submitter address.Address
	msgRel    address.Address
	confRel   address.Address
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	mds := ds_sync.MutexWrap(ds.NewMapDatastore())
	store := NewStore(mds)
	ledger := NewLedger(mds)

	env := &testEnv{
		t:         t,
		store:     store,
		ledger:    ledger,
		submitter: testAddr(t, "submitter"),
		msgRel:    testAddr(t, "message-relayer"),
		confRel:   testAddr(t, "confirm-relayer"),
	}
	env.market = NewMarket(Params{
		Config:   cfg,
		Store:    store,
		Currency: ledger,
		Slasher:  NewLinearSlasher(types.NewInt(2)),
	})

	env.mint(env.submitter, 10_000)
	return env
}

func (env *testEnv) mint(to address.Address, amount uint64) {
	require.NoError(env.t, env.ledger.Mint(context.TODO(), to, types.NewInt(amount)))
}

func (env *testEnv) balance(addr address.Address) uint64 {
	bal, err := env.ledger.Balance(context.TODO(), addr)
	require.NoError(env.t, err)
	return bal.Uint64()
}

// enroll funds a fresh relayer with twice the collateral and enrolls it.
func (env *testEnv) enroll(name string, collateral, quote uint64) address.Address {
	addr := testAddr(env.t, name)
	env.mint(addr, 2*collateral)
	require.NoError(env.t, env.market.Enroll(context.TODO(), addr, types.NewInt(collateral), types.NewInt(quote)))
	return addr
}

// enrollThree sets up the usual market: quotes 30, 40 and 50 with 1000
// collateral each.
func (env *testEnv) enrollThree() (r1, r2, r3 address.Address) {
	r1 = env.enroll("relayer-1", 1000, 30)
	r2 = env.enroll("relayer-2", 1000, 40)
	r3 = env.enroll("relayer-3", 1000, 50)
	return r1, r2, r3
}

// sendMessage collects the fee from the submitter and opens the order, the
// way the lane manager would on an accepted message.
func (env *testEnv) sendMessage(nonce types.MessageNonce, fee uint64, at abi.ChainEpoch) types.MessageKey {
	ctx := context.TODO()
	key := types.MessageKey{Lane: testLane, Nonce: nonce}

	require.NoError(env.t, env.market.CollectFee(ctx, types.SignedOrigin(env.submitter), types.NewInt(fee)))
	require.NoError(env.t, env.market.CreateOrder(ctx, key, types.NewInt(fee), at))
	return key
}

// settle confirms the nonce range as delivered by the message relayer and
// settles it.
func (env *testEnv) settle(begin, end types.MessageNonce, at abi.ChainEpoch) error {
	relayers := []types.UnrewardedRelayer{{
		Relayer:  env.msgRel,
		Messages: types.DeliveredMessages{Begin: begin, End: end},
	}}
	return env.market.SettleRewards(context.TODO(), testLane,
		types.DeliveredMessages{Begin: begin, End: end}, relayers, env.confRel, at)
}
