package fsjournal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/darwinia-network/darwinia-bridge-substrate/journal"
	"github.com/darwinia-network/darwinia-bridge-substrate/node/repo"
)

func TestFsJournalRecordsEvents(t *testing.T) {
	mem := repo.NewMemory(nil)
	defer mem.Cleanup()
	lr, err := mem.Lock()
	require.NoError(t, err)

	disabled := journal.DisabledEvents{{System: "feemarket", Event: "order_created"}}
	j, err := OpenFSJournal(lr, disabled)
	require.NoError(t, err)

	accepted := j.RegisterEventType("messages", "accepted")
	muted := j.RegisterEventType("feemarket", "order_created")
	require.True(t, accepted.Enabled())
	require.False(t, muted.Enabled())

	for nonce := 1; nonce <= 2; nonce++ {
		nonce := nonce
		j.RecordEvent(accepted, func() interface{} {
			return map[string]interface{}{"lane": "ln00", "nonce": nonce}
		})
	}
	supplied := false
	j.RecordEvent(muted, func() interface{} {
		supplied = true
		return nil
	})

	// Events travel through the write loop asynchronously.
	file := filepath.Join(lr.Path(), "journal", "bridge-journal.ndjson")
	require.Eventually(t, func() bool {
		b, err := os.ReadFile(file)
		return err == nil && strings.Count(string(b), "\n") == 2
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, j.Close())
	require.False(t, supplied, "supplier of a disabled event must not run")

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)

	var evt struct {
		System string
		Event  string
		Data   struct {
			Lane  string
			Nonce int
		}
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &evt))
	require.Equal(t, "messages", evt.System)
	require.Equal(t, "accepted", evt.Event)
	require.Equal(t, "ln00", evt.Data.Lane)
	require.Equal(t, 2, evt.Data.Nonce)
}
