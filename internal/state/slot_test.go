package state

import (
	"sync"
	"testing"

	"github.com/gomission/gomission/internal/transmission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStartsEmpty(t *testing.T) {
	s := NewSlot[transmission.Stats](nil)
	_, ok := s.Load()
	assert.False(t, ok)
	assert.Zero(t, s.Generation())
}

func TestSlotStoreReplacesWholeValue(t *testing.T) {
	s := NewSlot[transmission.Stats](nil)
	s.Store(transmission.Stats{TorrentCount: 1, Active: 1})
	s.Store(transmission.Stats{TorrentCount: 2})

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, transmission.Stats{TorrentCount: 2}, got)
	assert.Equal(t, uint64(2), s.Generation())
}

func TestStoreTorrentsDoNotAlias(t *testing.T) {
	store := NewStore()
	input := []transmission.Torrent{{ID: 1, Name: "a"}}
	store.Torrents.Store(input)
	input[0].Name = "mutated"

	got, ok := store.Torrents.Load()
	require.True(t, ok)
	assert.Equal(t, "a", got[0].Name)

	got[0].Name = "reader-mutated"
	again, _ := store.Torrents.Load()
	assert.Equal(t, "a", again[0].Name)
}

// pair is written with both fields equal; a reader seeing them differ has
// observed a torn write.
type pair struct {
	A, B int
	Tags []int
}

func TestSlotNoTornReads(t *testing.T) {
	s := NewSlot(func(p pair) pair {
		p.Tags = append([]int(nil), p.Tags...)
		return p
	})

	const writes = 2000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= writes; i++ {
			s.Store(pair{A: i, B: i, Tags: []int{i, i}})
		}
	}()

	torn := make(chan pair, 1)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writes; i++ {
				p, ok := s.Load()
				if !ok {
					continue
				}
				if p.A != p.B || len(p.Tags) != 2 || p.Tags[0] != p.A || p.Tags[1] != p.A {
					select {
					case torn <- p:
					default:
					}
					return
				}
			}
		}()
	}
	wg.Wait()

	select {
	case p := <-torn:
		t.Fatalf("observed torn snapshot %+v", p)
	default:
	}
	final, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, writes, final.A)
}
