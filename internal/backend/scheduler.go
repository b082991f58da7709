package backend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gomission/gomission/internal/action"
	"github.com/gomission/gomission/internal/bus"
	"github.com/gomission/gomission/internal/logging"
	"github.com/gomission/gomission/internal/logging/events"
	"github.com/gomission/gomission/internal/transmission"
	"golang.org/x/sync/errgroup"
)

// Kind represents the type of data a poller fetches.
type Kind int

const (
	KindTorrents Kind = iota
	KindStats
	KindFreeSpace
)

// Kinds lists every polled resource.
var Kinds = []Kind{KindTorrents, KindStats, KindFreeSpace}

func (k Kind) String() string {
	switch k {
	case KindTorrents:
		return "torrents"
	case KindStats:
		return "stats"
	case KindFreeSpace:
		return "free-space"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Applier consumes an Event on the poller's goroutine and returns the action
// to forward to the UI, if any.
type Applier func(Event) action.Action

// Sink accepts actions for the UI. *bus.Queue[action.Action] satisfies it.
type Sink interface {
	Send(action.Action) bool
}

// Intervals sets the polling cadence per kind.
type Intervals struct {
	Torrents  time.Duration
	Stats     time.Duration
	FreeSpace time.Duration
}

// DefaultIntervals matches what a local daemon comfortably serves.
func DefaultIntervals() Intervals {
	return Intervals{
		Torrents:  time.Second,
		Stats:     2 * time.Second,
		FreeSpace: 10 * time.Second,
	}
}

func (i Intervals) of(kind Kind) time.Duration {
	var d time.Duration
	switch kind {
	case KindTorrents:
		d = i.Torrents
	case KindStats:
		d = i.Stats
	case KindFreeSpace:
		d = i.FreeSpace
	}
	if d <= 0 {
		return DefaultIntervals().of(kind)
	}
	return d
}

// Options tune a Scheduler.
type Options struct {
	Intervals Intervals
	// DownloadDir overrides the path used for free-space queries. When empty
	// the daemon's session download-dir is used.
	DownloadDir string
	// MinGap is the shortest time between two fetches of one kind.
	MinGap time.Duration
}

const defaultMinGap = 250 * time.Millisecond

// Scheduler runs one poller per Kind plus a single mutation drain. Pollers
// keep running after failures; they stop only when the scheduler does.
// A poller reports a failure once: the same error repeated on later ticks is
// traced but not applied again until a fetch of that kind succeeds.
type Scheduler struct {
	svc   transmission.Service
	apply Applier
	sink  Sink
	opts  Options

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	refresh  map[Kind]chan struct{}
	requests *bus.Queue[Request]

	dirMu       sync.Mutex
	downloadDir string
}

// New starts the pollers and the drain. Call Stop to shut them down.
func New(svc transmission.Service, apply Applier, sink Sink, opts Options) *Scheduler {
	if opts.MinGap == 0 {
		opts.MinGap = defaultMinGap
	}
	parent, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(parent)
	s := &Scheduler{
		svc:         svc,
		apply:       apply,
		sink:        sink,
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
		group:       group,
		refresh:     make(map[Kind]chan struct{}, len(Kinds)),
		requests:    bus.New[Request](),
		downloadDir: strings.TrimSpace(opts.DownloadDir),
	}
	for _, kind := range Kinds {
		s.refresh[kind] = make(chan struct{}, 1)
	}

	s.startPoller(KindTorrents, func(ctx context.Context) (interface{}, error) {
		return s.svc.ListTorrents(ctx)
	})
	s.startPoller(KindStats, func(ctx context.Context) (interface{}, error) {
		return s.svc.Stats(ctx)
	})
	s.startPoller(KindFreeSpace, func(ctx context.Context) (interface{}, error) {
		path, err := s.freeSpacePath(ctx)
		if err != nil {
			return nil, err
		}
		return s.svc.FreeSpace(ctx, path)
	})
	s.group.Go(s.drain)

	return s
}

// Submit queues a mutation. It reports false once the scheduler is stopped.
func (s *Scheduler) Submit(req Request) bool {
	return s.requests.Send(req)
}

// Refresh asks the poller for kind to fetch now. Requests coalesce while one
// is pending.
func (s *Scheduler) Refresh(kind Kind) {
	ch, ok := s.refresh[kind]
	if !ok {
		return
	}
	select {
	case ch <- struct{}{}:
		events.Fetch.Refresh(kind.String())
	default:
	}
}

// Stop cancels all background work. In-flight requests are abandoned.
func (s *Scheduler) Stop() {
	s.cancel()
	s.requests.Close()
}

// Wait blocks until every goroutine has exited. Call after Stop when a clean
// shutdown is required (e.g. in tests).
func (s *Scheduler) Wait() error {
	return s.group.Wait()
}

type fetchFunc func(context.Context) (interface{}, error)

func (s *Scheduler) startPoller(kind Kind, fetch fetchFunc) {
	s.group.Go(func() error {
		s.poll(kind, fetch)
		return nil
	})
}

func (s *Scheduler) poll(kind Kind, fetch fetchFunc) {
	throttle := newThrottle(s.opts.MinGap)
	var lastErr string

	emit := func() bool {
		if err := throttle.wait(s.ctx); err != nil {
			return false
		}
		start := time.Now()
		data, err := fetch(s.ctx)
		if s.ctx.Err() != nil {
			return false
		}
		events.Fetch.Result(kind.String(), time.Since(start), err)
		if err != nil {
			msg := err.Error()
			if msg == lastErr {
				events.Fetch.Suppressed(kind.String(), msg)
				return true
			}
			lastErr = msg
			logging.Error(fmt.Errorf("fetch %s: %w", kind, err))
		} else {
			lastErr = ""
		}
		if follow := s.apply(Event{Kind: kind, Data: data, Err: err}); follow != nil {
			s.sink.Send(follow)
		}
		return true
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(s.opts.Intervals.of(kind))
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		case <-s.refresh[kind]:
		}
		if !emit() {
			return
		}
	}
}

func (s *Scheduler) freeSpacePath(ctx context.Context) (string, error) {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()
	if s.downloadDir != "" {
		return s.downloadDir, nil
	}
	dir, err := s.svc.DownloadDir(ctx)
	if err != nil {
		return "", err
	}
	s.downloadDir = dir
	return dir, nil
}

func (s *Scheduler) drain() error {
	for {
		req, err := s.requests.Recv(s.ctx)
		if err != nil {
			return nil
		}
		s.execute(req)
	}
}

func (s *Scheduler) execute(req Request) {
	label := req.Label()
	events.Fetch.MutationStart(req.ID, label)
	err := req.execute(s.ctx, s.svc)
	events.Fetch.MutationResult(req.ID, label, err)
	if s.ctx.Err() != nil {
		return
	}
	if err != nil {
		logging.Error(fmt.Errorf("%s: %w", label, err))
		s.sink.Send(action.Error{Popup: action.ErrorPopup{
			Title:   "Failed to " + label,
			Message: err.Error(),
		}})
		return
	}
	for _, kind := range req.refreshes() {
		s.Refresh(kind)
	}
}
