package transmission

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hekmon/transmissionrpc/v3"
)

// ErrUnsupportedOperation is returned for an Operation the client cannot map.
var ErrUnsupportedOperation = errors.New("unsupported torrent operation")

// torrentFields limits torrent-get to the columns Torrent carries.
var torrentFields = []string{
	"id",
	"name",
	"totalSize",
	"percentDone",
	"eta",
	"rateDownload",
	"rateUpload",
	"status",
	"errorString",
	"uploadRatio",
}

// Connection holds the daemon endpoint and credentials.
type Connection struct {
	URL      string
	Username string
	Password string
}

// Endpoint returns the RPC URL with credentials folded into its user info.
func (c Connection) Endpoint() (*url.URL, error) {
	endpoint, err := url.Parse(strings.TrimSpace(c.URL))
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if c.Username != "" {
		endpoint.User = url.UserPassword(c.Username, c.Password)
	}
	return endpoint, nil
}

// Client adapts transmissionrpc to Service.
type Client struct {
	rpc *transmissionrpc.Client
}

var _ Service = (*Client)(nil)

// NewClient builds a client for the given connection. No request is made
// until the first call.
func NewClient(conn Connection, userAgent string) (*Client, error) {
	endpoint, err := conn.Endpoint()
	if err != nil {
		return nil, err
	}
	var extra *transmissionrpc.Config
	if userAgent != "" {
		extra = &transmissionrpc.Config{UserAgent: userAgent}
	}
	rpc, err := transmissionrpc.New(endpoint, extra)
	if err != nil {
		return nil, fmt.Errorf("create rpc client: %w", err)
	}
	return &Client{rpc: rpc}, nil
}

func (c *Client) ListTorrents(ctx context.Context) ([]Torrent, error) {
	raw, err := c.rpc.TorrentGet(ctx, torrentFields, nil)
	if err != nil {
		return nil, fmt.Errorf("torrent-get: %w", err)
	}
	torrents := make([]Torrent, 0, len(raw))
	for _, t := range raw {
		torrents = append(torrents, torrentFromRPC(t))
	}
	return torrents, nil
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	raw, err := c.rpc.SessionStats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("session-stats: %w", err)
	}
	return statsFromRPC(raw), nil
}

func (c *Client) FreeSpace(ctx context.Context, path string) (FreeSpace, error) {
	free, total, err := c.rpc.FreeSpace(ctx, path)
	if err != nil {
		return FreeSpace{}, fmt.Errorf("free-space %s: %w", path, err)
	}
	return FreeSpace{
		Path:       path,
		SizeBytes:  int64(uint64(free) / 8),
		TotalBytes: int64(uint64(total) / 8),
	}, nil
}

func (c *Client) DownloadDir(ctx context.Context) (string, error) {
	args, err := c.rpc.SessionArgumentsGet(ctx, []string{"download-dir"})
	if err != nil {
		return "", fmt.Errorf("session-get: %w", err)
	}
	if args.DownloadDir == nil {
		return "", errors.New("session-get: daemon did not report download-dir")
	}
	return *args.DownloadDir, nil
}

func (c *Client) AddTorrent(ctx context.Context, desc Descriptor) error {
	source := strings.TrimSpace(desc.Source)
	if source == "" {
		return errors.New("torrent-add: empty source")
	}
	payload := transmissionrpc.TorrentAddPayload{Filename: &source}
	if dir := strings.TrimSpace(desc.DownloadDir); dir != "" {
		payload.DownloadDir = &dir
	}
	if _, err := c.rpc.TorrentAdd(ctx, payload); err != nil {
		return fmt.Errorf("torrent-add: %w", err)
	}
	return nil
}

func (c *Client) MutateTorrent(ctx context.Context, id int64, op Operation) error {
	ids := []int64{id}
	var err error
	switch op {
	case OpStart:
		err = c.rpc.TorrentStartIDs(ctx, ids)
	case OpStartNow:
		err = c.rpc.TorrentStartNowIDs(ctx, ids)
	case OpStop:
		err = c.rpc.TorrentStopIDs(ctx, ids)
	case OpVerify:
		err = c.rpc.TorrentVerifyIDs(ctx, ids)
	case OpReannounce:
		err = c.rpc.TorrentReannounceIDs(ctx, ids)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedOperation, int(op))
	}
	if err != nil {
		return fmt.Errorf("torrent %s %d: %w", op, id, err)
	}
	return nil
}

func (c *Client) RemoveTorrent(ctx context.Context, id int64, deleteData bool) error {
	err := c.rpc.TorrentRemove(ctx, transmissionrpc.TorrentRemovePayload{
		IDs:             []int64{id},
		DeleteLocalData: deleteData,
	})
	if err != nil {
		return fmt.Errorf("torrent-remove %d: %w", id, err)
	}
	return nil
}

func torrentFromRPC(t transmissionrpc.Torrent) Torrent {
	var out Torrent
	if t.ID != nil {
		out.ID = *t.ID
	}
	if t.Name != nil {
		out.Name = *t.Name
	}
	if t.TotalSize != nil {
		out.SizeBytes = int64(uint64(*t.TotalSize) / 8)
	}
	if t.PercentDone != nil {
		out.PercentDone = *t.PercentDone
	}
	if t.ETA != nil {
		out.ETA = *t.ETA
	}
	if t.RateDownload != nil {
		out.RateDownload = *t.RateDownload
	}
	if t.RateUpload != nil {
		out.RateUpload = *t.RateUpload
	}
	if t.Status != nil {
		out.Status = Status(*t.Status)
	}
	if t.ErrorString != nil {
		out.Error = *t.ErrorString
	}
	if t.UploadRatio != nil {
		out.UploadRatio = *t.UploadRatio
	}
	return out
}

func statsFromRPC(s transmissionrpc.SessionStats) Stats {
	return Stats{
		TorrentCount:  s.TorrentCount,
		Active:        s.ActiveTorrentCount,
		Paused:        s.PausedTorrentCount,
		DownloadSpeed: s.DownloadSpeed,
		UploadSpeed:   s.UploadSpeed,
		Cumulative:    totalsFromRPC(s.CumulativeStats),
		Current:       totalsFromRPC(s.CurrentStats),
	}
}

func totalsFromRPC(d transmissionrpc.SessionStatsDetails) Totals {
	return Totals{
		UploadedBytes:   d.UploadedBytes,
		DownloadedBytes: d.DownloadedBytes,
		FilesAdded:      d.FilesAdded,
		SessionCount:    d.SessionCount,
		SecondsActive:   d.SecondsActive,
	}
}
