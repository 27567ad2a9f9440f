package bridgelog

import logging "github.com/ipfs/go-log/v2"

func SetupLogLevels() {
	logging.SetLogLevel("*", "INFO")
	logging.SetLogLevel("dispatch", "WARN")
}
