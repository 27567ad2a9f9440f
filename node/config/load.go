package config

import (
	"bytes"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

// FromFile loads config from a specified file, overriding defaults specified
// in the def parameter. If the file does not exist, defaults are assumed.
func FromFile(path string, def *Bridge) (*Bridge, error) {
	file, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
		return def, nil
	case err != nil:
		return nil, err
	}

	defer file.Close() //nolint:errcheck // The file is RO
	return FromReader(file, def)
}

// FromReader loads config from a reader instance.
func FromReader(reader io.Reader, def *Bridge) (*Bridge, error) {
	cfg := *def
	if _, err := toml.NewDecoder(reader).Decode(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Bridge) Validate() error {
	if _, err := types.ChainIDFromString(cfg.Chain.SelfChainID); err != nil {
		return xerrors.Errorf("Chain.SelfChainID: %w", err)
	}
	if _, err := types.ChainIDFromString(cfg.Chain.BridgedChainID); err != nil {
		return xerrors.Errorf("Chain.BridgedChainID: %w", err)
	}
	for _, lane := range cfg.Messages.ActiveLanes {
		if _, err := types.LaneIDFromString(lane); err != nil {
			return xerrors.Errorf("Messages.ActiveLanes: %w", err)
		}
	}

	fm := cfg.FeeMarket
	if fm.MessageRelayersRewardRatio+fm.ConfirmRelayersRewardRatio != uint32(types.PermillOne) {
		return xerrors.Errorf("FeeMarket: message and confirm reward ratios must sum to %d", types.PermillOne)
	}
	for name, ratio := range map[string]uint32{
		"BaseFeeRatio":                fm.BaseFeeRatio,
		"AssignedRelayersRewardRatio": fm.AssignedRelayersRewardRatio,
		"AssignedRelayerSlashRatio":   fm.AssignedRelayerSlashRatio,
	} {
		if ratio > uint32(types.PermillOne) {
			return xerrors.Errorf("FeeMarket.%s: ratio above one million", name)
		}
	}
	if fm.AssignedRelayersNumber == 0 {
		return xerrors.Errorf("FeeMarket.AssignedRelayersNumber must be positive")
	}
	if fm.SlotBlocks <= 0 {
		return xerrors.Errorf("FeeMarket.SlotBlocks must be positive")
	}

	if cfg.Finality.MaxFutureNumberDifference <= 0 {
		return xerrors.Errorf("Finality.MaxFutureNumberDifference must be positive")
	}

	return nil
}

// ConfigComment renders a config struct to commented-out TOML, the form
// written into a fresh repo.
func ConfigComment(t interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	_, _ = buf.WriteString("# Default config:\n")
	e := toml.NewEncoder(buf)
	if err := e.Encode(t); err != nil {
		return nil, xerrors.Errorf("encoding config: %w", err)
	}
	b := buf.Bytes()
	b = bytes.ReplaceAll(b, []byte("\n"), []byte("\n#"))
	b = bytes.ReplaceAll(b, []byte("#["), []byte("["))
	return b, nil
}
