package transmission

import (
	"testing"

	"github.com/hekmon/transmissionrpc/v3"
)

func TestConnectionEndpointCarriesCredentials(t *testing.T) {
	conn := Connection{URL: " http://localhost:9091/transmission/rpc ", Username: "alice", Password: "s3cret"}
	endpoint, err := conn.Endpoint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoint.Host != "localhost:9091" {
		t.Fatalf("expected host localhost:9091, got %q", endpoint.Host)
	}
	if endpoint.User.Username() != "alice" {
		t.Fatalf("expected username alice, got %q", endpoint.User.Username())
	}
	if pw, _ := endpoint.User.Password(); pw != "s3cret" {
		t.Fatalf("expected password to be set, got %q", pw)
	}
}

func TestConnectionEndpointWithoutCredentials(t *testing.T) {
	endpoint, err := Connection{URL: "http://nas:9091/transmission/rpc"}.Endpoint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoint.User != nil {
		t.Fatalf("expected no user info, got %v", endpoint.User)
	}
}

func TestTorrentFromRPCHandlesMissingFields(t *testing.T) {
	got := torrentFromRPC(transmissionrpc.Torrent{})
	if got != (Torrent{}) {
		t.Fatalf("expected zero torrent, got %+v", got)
	}

	id := int64(7)
	name := "debian.iso"
	done := 0.5
	status := transmissionrpc.TorrentStatusSeed
	got = torrentFromRPC(transmissionrpc.Torrent{ID: &id, Name: &name, PercentDone: &done, Status: &status})
	if got.ID != 7 || got.Name != "debian.iso" || got.PercentDone != 0.5 {
		t.Fatalf("unexpected conversion: %+v", got)
	}
	if got.Status != StatusSeed {
		t.Fatalf("expected seeding status, got %v", got.Status)
	}
}

func TestStatsFromRPCCopiesTotals(t *testing.T) {
	got := statsFromRPC(transmissionrpc.SessionStats{
		TorrentCount:    3,
		CumulativeStats: transmissionrpc.SessionStatsDetails{UploadedBytes: 100, DownloadedBytes: 50},
	})
	if got.TorrentCount != 3 {
		t.Fatalf("expected 3 torrents, got %d", got.TorrentCount)
	}
	if got.Cumulative.UploadedBytes != 100 || got.Cumulative.DownloadedBytes != 50 {
		t.Fatalf("unexpected cumulative totals: %+v", got.Cumulative)
	}
	if got.Current != (Totals{}) {
		t.Fatalf("expected empty current totals, got %+v", got.Current)
	}
}

func TestOperationString(t *testing.T) {
	cases := map[Operation]string{
		OpStart:       "start",
		OpStop:        "stop",
		OpVerify:      "verify",
		OpReannounce:  "reannounce",
		Operation(99): "unknown",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Fatalf("Operation(%d).String() = %q, want %q", int(op), got, want)
		}
	}
}
