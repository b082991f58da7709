package transmission

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
)

type rpcCall struct {
	Method    string
	Arguments map[string]interface{}
}

// fakeDaemon answers Transmission RPC calls with canned arguments per method
// and records every call it receives.
type fakeDaemon struct {
	mu      sync.Mutex
	answers map[string]interface{}
	calls   []rpcCall
	auth    [][2]string
}

func newFakeDaemon(t *testing.T, answers map[string]interface{}) (*fakeDaemon, *httptest.Server) {
	t.Helper()
	d := &fakeDaemon{answers: answers}
	srv := httptest.NewServer(http.HandlerFunc(d.serve))
	t.Cleanup(srv.Close)
	return d, srv
}

func (d *fakeDaemon) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method    string                 `json:"method"`
		Arguments map[string]interface{} `json:"arguments"`
		Tag       int                    `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user, pass, _ := r.BasicAuth()

	d.mu.Lock()
	d.calls = append(d.calls, rpcCall{Method: req.Method, Arguments: req.Arguments})
	d.auth = append(d.auth, [2]string{user, pass})
	args, ok := d.answers[req.Method]
	d.mu.Unlock()

	if !ok {
		args = map[string]interface{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"result":    "success",
		"arguments": args,
		"tag":       req.Tag,
	})
}

func (d *fakeDaemon) lastCall(t *testing.T) rpcCall {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.calls) == 0 {
		t.Fatalf("expected the daemon to receive a call")
	}
	return d.calls[len(d.calls)-1]
}

func newDaemonClient(t *testing.T, srv *httptest.Server, conn Connection) *Client {
	t.Helper()
	conn.URL = srv.URL + "/transmission/rpc"
	client, err := NewClient(conn, "gomission-test")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func TestClientListTorrentsDecodesDaemonFields(t *testing.T) {
	d, srv := newFakeDaemon(t, map[string]interface{}{
		"torrent-get": map[string]interface{}{
			"torrents": []map[string]interface{}{{
				"id":           7,
				"name":         "debian.iso",
				"totalSize":    1000,
				"percentDone":  0.25,
				"eta":          90,
				"rateDownload": 2048,
				"rateUpload":   512,
				"status":       4,
				"errorString":  "",
				"uploadRatio":  -1,
			}},
		},
	})
	client := newDaemonClient(t, srv, Connection{Username: "alice", Password: "s3cret"})

	torrents, err := client.ListTorrents(context.Background())
	if err != nil {
		t.Fatalf("list torrents: %v", err)
	}
	want := []Torrent{{
		ID:           7,
		Name:         "debian.iso",
		SizeBytes:    1000,
		PercentDone:  0.25,
		ETA:          90,
		RateDownload: 2048,
		RateUpload:   512,
		Status:       StatusDownload,
		UploadRatio:  -1,
	}}
	if !reflect.DeepEqual(torrents, want) {
		t.Fatalf("unexpected torrents:\n got %+v\nwant %+v", torrents, want)
	}

	call := d.lastCall(t)
	if call.Method != "torrent-get" {
		t.Fatalf("expected torrent-get, got %q", call.Method)
	}
	fields, _ := call.Arguments["fields"].([]interface{})
	if len(fields) != len(torrentFields) {
		t.Fatalf("expected %d requested fields, got %v", len(torrentFields), call.Arguments["fields"])
	}

	d.mu.Lock()
	auth := d.auth[len(d.auth)-1]
	d.mu.Unlock()
	if auth != [2]string{"alice", "s3cret"} {
		t.Fatalf("expected credentials from the connection, got %v", auth)
	}
}

func TestClientFreeSpaceConvertsToBytes(t *testing.T) {
	d, srv := newFakeDaemon(t, map[string]interface{}{
		"free-space": map[string]interface{}{
			"path":       "/srv/torrents",
			"size-bytes": 2048,
			"total_size": 4096,
		},
	})
	client := newDaemonClient(t, srv, Connection{})

	free, err := client.FreeSpace(context.Background(), "/srv/torrents")
	if err != nil {
		t.Fatalf("free space: %v", err)
	}
	want := FreeSpace{Path: "/srv/torrents", SizeBytes: 2048, TotalBytes: 4096}
	if free != want {
		t.Fatalf("expected %+v, got %+v", want, free)
	}
	if got := d.lastCall(t).Arguments["path"]; got != "/srv/torrents" {
		t.Fatalf("expected path argument, got %v", got)
	}
}

func TestClientStatsAndDownloadDir(t *testing.T) {
	_, srv := newFakeDaemon(t, map[string]interface{}{
		"session-stats": map[string]interface{}{
			"activeTorrentCount": 1,
			"pausedTorrentCount": 2,
			"torrentCount":       3,
			"downloadSpeed":      10,
			"uploadSpeed":        20,
			"cumulative-stats":   map[string]interface{}{"uploadedBytes": 100, "downloadedBytes": 50, "sessionCount": 4},
			"current-stats":      map[string]interface{}{"uploadedBytes": 5},
		},
		"session-get": map[string]interface{}{
			"download-dir": "/srv/torrents",
		},
	})
	client := newDaemonClient(t, srv, Connection{})

	stats, err := client.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := Stats{
		TorrentCount:  3,
		Active:        1,
		Paused:        2,
		DownloadSpeed: 10,
		UploadSpeed:   20,
		Cumulative:    Totals{UploadedBytes: 100, DownloadedBytes: 50, SessionCount: 4},
		Current:       Totals{UploadedBytes: 5},
	}
	if stats != want {
		t.Fatalf("unexpected stats:\n got %+v\nwant %+v", stats, want)
	}

	dir, err := client.DownloadDir(context.Background())
	if err != nil {
		t.Fatalf("download dir: %v", err)
	}
	if dir != "/srv/torrents" {
		t.Fatalf("expected /srv/torrents, got %q", dir)
	}
}

func TestClientMutationsSendMethodAndIDs(t *testing.T) {
	d, srv := newFakeDaemon(t, map[string]interface{}{
		"torrent-add": map[string]interface{}{
			"torrent-added": map[string]interface{}{"id": 9, "name": "new", "hashString": "abc"},
		},
	})
	client := newDaemonClient(t, srv, Connection{})
	ctx := context.Background()

	cases := []struct {
		op     Operation
		method string
	}{
		{OpStart, "torrent-start"},
		{OpStartNow, "torrent-start-now"},
		{OpStop, "torrent-stop"},
		{OpVerify, "torrent-verify"},
		{OpReannounce, "torrent-reannounce"},
	}
	for _, tc := range cases {
		if err := client.MutateTorrent(ctx, 7, tc.op); err != nil {
			t.Fatalf("%s: %v", tc.op, err)
		}
		call := d.lastCall(t)
		if call.Method != tc.method {
			t.Fatalf("expected %s, got %q", tc.method, call.Method)
		}
		if !reflect.DeepEqual(call.Arguments["ids"], []interface{}{float64(7)}) {
			t.Fatalf("expected ids [7] for %s, got %v", tc.method, call.Arguments["ids"])
		}
	}

	if err := client.RemoveTorrent(ctx, 7, true); err != nil {
		t.Fatalf("remove: %v", err)
	}
	call := d.lastCall(t)
	if call.Method != "torrent-remove" || call.Arguments["delete-local-data"] != true {
		t.Fatalf("unexpected remove call %+v", call)
	}

	if err := client.AddTorrent(ctx, Descriptor{Source: " magnet:?xt=urn:btih:abc ", DownloadDir: "/srv"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	call = d.lastCall(t)
	if call.Method != "torrent-add" {
		t.Fatalf("expected torrent-add, got %q", call.Method)
	}
	if call.Arguments["filename"] != "magnet:?xt=urn:btih:abc" || call.Arguments["download-dir"] != "/srv" {
		t.Fatalf("unexpected add arguments %v", call.Arguments)
	}
}
