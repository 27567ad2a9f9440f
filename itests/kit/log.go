package kit

import (
	logging "github.com/ipfs/go-log/v2"

	"github.com/darwinia-network/darwinia-bridge-substrate/lib/bridgelog"
)

// QuietBridgeLogs raises the log levels so test output carries only errors
// from the bridge subsystems. Set these to INFO to watch a flow unfold.
func QuietBridgeLogs() {
	bridgelog.SetupLogLevels()

	_ = logging.SetLogLevel("messages", "ERROR")
	_ = logging.SetLogLevel("finality", "ERROR")
	_ = logging.SetLogLevel("dispatch", "ERROR")
	_ = logging.SetLogLevel("feemarket", "ERROR")
	_ = logging.SetLogLevel("journal", "ERROR")
}
