package archive

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmarinov/belot-companion/internal/belot"
)

const snapshotVersion = 1

// Snapshot is the portable form of the whole scorebook.
type Snapshot struct {
	Version    int            `msgpack:"version"`
	ExportedAt time.Time      `msgpack:"exportedAt"`
	Players    []belot.Player `msgpack:"players"`
	Games      []*belot.Game  `msgpack:"games"`
}

func encodeSnapshot(snap *Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}
