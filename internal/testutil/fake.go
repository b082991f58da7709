package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/gomission/gomission/internal/transmission"
)

// Call records one mutating call made against a FakeService.
type Call struct {
	Method     string
	ID         int64
	Op         transmission.Operation
	Descriptor transmission.Descriptor
	DeleteData bool
}

// FakeService is an in-memory transmission.Service. Errors set on it are
// returned by the matching method until cleared.
type FakeService struct {
	mu sync.Mutex

	Torrents    []transmission.Torrent
	StatsValue  transmission.Stats
	Free        transmission.FreeSpace
	Dir         string
	NextID      int64
	calls       []Call
	fetchCounts map[string]int

	ListErr     error
	StatsErr    error
	FreeErr     error
	DirErr      error
	MutationErr error
}

var _ transmission.Service = (*FakeService)(nil)

// NewFakeService returns a fake seeded with torrents.
func NewFakeService(torrents ...transmission.Torrent) *FakeService {
	return &FakeService{
		Torrents:    torrents,
		Dir:         "/downloads",
		NextID:      int64(len(torrents) + 1),
		fetchCounts: make(map[string]int),
	}
}

func (f *FakeService) count(method string) {
	if f.fetchCounts == nil {
		f.fetchCounts = make(map[string]int)
	}
	f.fetchCounts[method]++
}

// FetchCount reports how many times a read method was called.
func (f *FakeService) FetchCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCounts[method]
}

// Calls returns the mutating calls in the order received.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// SetStatsErr swaps the Stats error under the lock.
func (f *FakeService) SetStatsErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StatsErr = err
}

// SetMutationErr swaps the error returned by mutating calls.
func (f *FakeService) SetMutationErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MutationErr = err
}

func (f *FakeService) ListTorrents(ctx context.Context) ([]transmission.Torrent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListTorrents")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]transmission.Torrent(nil), f.Torrents...), nil
}

func (f *FakeService) Stats(ctx context.Context) (transmission.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Stats")
	if f.StatsErr != nil {
		return transmission.Stats{}, f.StatsErr
	}
	stats := f.StatsValue
	stats.TorrentCount = int64(len(f.Torrents))
	return stats, nil
}

func (f *FakeService) FreeSpace(ctx context.Context, path string) (transmission.FreeSpace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("FreeSpace")
	if f.FreeErr != nil {
		return transmission.FreeSpace{}, f.FreeErr
	}
	free := f.Free
	free.Path = path
	return free, nil
}

func (f *FakeService) DownloadDir(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("DownloadDir")
	if f.DirErr != nil {
		return "", f.DirErr
	}
	return f.Dir, nil
}

func (f *FakeService) AddTorrent(ctx context.Context, desc transmission.Descriptor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "AddTorrent", Descriptor: desc})
	if f.MutationErr != nil {
		return f.MutationErr
	}
	f.Torrents = append(f.Torrents, transmission.Torrent{ID: f.NextID, Name: desc.Source})
	f.NextID++
	return nil
}

func (f *FakeService) MutateTorrent(ctx context.Context, id int64, op transmission.Operation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "MutateTorrent", ID: id, Op: op})
	if f.MutationErr != nil {
		return f.MutationErr
	}
	for i := range f.Torrents {
		if f.Torrents[i].ID != id {
			continue
		}
		switch op {
		case transmission.OpStop:
			f.Torrents[i].Status = transmission.StatusStopped
		case transmission.OpStart, transmission.OpStartNow:
			f.Torrents[i].Status = transmission.StatusDownload
		case transmission.OpVerify:
			f.Torrents[i].Status = transmission.StatusCheck
		}
	}
	return nil
}

func (f *FakeService) RemoveTorrent(ctx context.Context, id int64, deleteData bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "RemoveTorrent", ID: id, DeleteData: deleteData})
	if f.MutationErr != nil {
		return f.MutationErr
	}
	kept := f.Torrents[:0]
	for _, t := range f.Torrents {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.Torrents = kept
	return nil
}

// Torrents builds n torrents named torrent-1 .. torrent-n with ids 1..n.
func Torrents(n int) []transmission.Torrent {
	out := make([]transmission.Torrent, n)
	for i := range out {
		out[i] = transmission.Torrent{
			ID:        int64(i + 1),
			Name:      fmt.Sprintf("torrent-%d", i+1),
			SizeBytes: int64(i+1) << 20,
			Status:    transmission.StatusDownload,
		}
	}
	return out
}
