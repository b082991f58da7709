package transmission

import "context"

// Status mirrors the daemon's numeric torrent status.
type Status int

const (
	StatusStopped Status = iota
	StatusCheckWait
	StatusCheck
	StatusDownloadWait
	StatusDownload
	StatusSeedWait
	StatusSeed
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusCheckWait:
		return "queued to verify"
	case StatusCheck:
		return "verifying"
	case StatusDownloadWait:
		return "queued"
	case StatusDownload:
		return "downloading"
	case StatusSeedWait:
		return "queued to seed"
	case StatusSeed:
		return "seeding"
	default:
		return "unknown"
	}
}

// Active reports whether the torrent is doing anything other than sitting stopped.
func (s Status) Active() bool {
	return s != StatusStopped
}

// Torrent is the subset of torrent fields the client renders.
type Torrent struct {
	ID           int64
	Name         string
	SizeBytes    int64
	PercentDone  float64
	ETA          int64
	RateDownload int64
	RateUpload   int64
	Status       Status
	Error        string
	UploadRatio  float64
}

// Totals are transfer counters for one accounting window.
type Totals struct {
	UploadedBytes   int64
	DownloadedBytes int64
	FilesAdded      int64
	SessionCount    int64
	SecondsActive   int64
}

// Stats summarises the daemon session.
type Stats struct {
	TorrentCount  int64
	Active        int64
	Paused        int64
	DownloadSpeed int64
	UploadSpeed   int64
	Cumulative    Totals
	Current       Totals
}

// FreeSpace describes available storage at a path on the daemon host.
type FreeSpace struct {
	Path       string
	SizeBytes  int64
	TotalBytes int64
}

// Descriptor identifies a torrent to add: a magnet link, URL or path the
// daemon can read.
type Descriptor struct {
	Source      string
	DownloadDir string
}

// Operation is a state change applied to an existing torrent.
type Operation int

const (
	OpStart Operation = iota
	OpStartNow
	OpStop
	OpVerify
	OpReannounce
)

func (o Operation) String() string {
	switch o {
	case OpStart:
		return "start"
	case OpStartNow:
		return "start-now"
	case OpStop:
		return "stop"
	case OpVerify:
		return "verify"
	case OpReannounce:
		return "reannounce"
	default:
		return "unknown"
	}
}

// Service is the remote daemon as seen by the rest of the program. Every
// call may block on the network and honours ctx cancellation.
type Service interface {
	ListTorrents(ctx context.Context) ([]Torrent, error)
	Stats(ctx context.Context) (Stats, error)
	FreeSpace(ctx context.Context, path string) (FreeSpace, error)
	DownloadDir(ctx context.Context) (string, error)
	AddTorrent(ctx context.Context, desc Descriptor) error
	MutateTorrent(ctx context.Context, id int64, op Operation) error
	RemoveTorrent(ctx context.Context, id int64, deleteData bool) error
}
