package client

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/steamlink-go/steamlink/internal/protocol"
)

// collectionDocument is the JSON payload stored in a cloud config
// entry's value for the collections namespace.
type collectionDocument struct {
	Name  string   `json:"name"`
	Added []uint32 `json:"added"`
}

// collectionsAccumulator gathers collection definitions across however
// many response chunks the download arrives in. The completion signal
// fires exactly once.
type collectionsAccumulator struct {
	mu          sync.Mutex
	collections map[string][]uint32

	done     chan struct{}
	doneOnce sync.Once
}

func newCollectionsAccumulator() *collectionsAccumulator {
	return &collectionsAccumulator{
		collections: make(map[string][]uint32),
		done:        make(chan struct{}),
	}
}

// absorb folds one namespace's entries into the accumulated mapping.
// Entries whose value is not a well formed collection document are
// ignored, matching the tolerant behavior of the desktop client.
func (a *collectionsAccumulator) absorb(data []protocol.CloudConfigNamespaceData) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, ns := range data {
		for _, entry := range ns.Entries {
			var doc collectionDocument
			if err := json.Unmarshal([]byte(entry.Value), &doc); err != nil {
				continue
			}
			if doc.Name == "" {
				continue
			}
			a.collections[doc.Name] = doc.Added
		}
	}
}

func (a *collectionsAccumulator) finish() {
	a.doneOnce.Do(func() { close(a.done) })
}

// wait blocks until the download response has been fully consumed and
// returns a copy of the accumulated mapping.
func (a *collectionsAccumulator) wait(ctx context.Context) (map[string][]uint32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-a.done:
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string][]uint32, len(a.collections))
	for k, v := range a.collections {
		out[k] = v
	}
	return out, nil
}
