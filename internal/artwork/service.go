package artwork

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"
)

// Status is the state of one artwork fetch.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusLoading
	StatusReady
	StatusFailed
)

// String returns the string representation of Status
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DefaultTimeout bounds a single fetch
const DefaultTimeout = 15 * time.Second

// ErrEmptyURL is returned by fetchers for blank URLs
var ErrEmptyURL = errors.New("empty artwork url")

type task struct {
	url    string
	status Status
	res    fyne.Resource
	err    error
}

// Service loads artwork concurrently
type Service struct {
	tasks       map[string]*task
	queue       []*task
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	timeout     time.Duration
	fetcher     Fetcher
	fallback    fyne.Resource
	onUpdate    func(url string, res fyne.Resource) // callback for UI updates
}

// NewService creates a new artwork service. A nil fetcher uses HTTP.
func NewService(fetcher Fetcher, fallback fyne.Resource, maxParallel int, timeout time.Duration) *Service {
	if fetcher == nil {
		fetcher = NewHTTPFetcher()
	}
	if maxParallel < 1 {
		maxParallel = 1
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		tasks:       make(map[string]*task),
		maxParallel: maxParallel,
		timeout:     timeout,
		fetcher:     fetcher,
		fallback:    fallback,
	}
}

// SetUpdateCallback sets the callback invoked when an image finishes
// loading, successfully or not
func (s *Service) SetUpdateCallback(callback func(url string, res fyne.Resource)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetMaxParallel sets the maximum number of concurrent fetches
func (s *Service) SetMaxParallel(max int) {
	if max < 1 {
		max = 1
	}
	s.tasksMutex.Lock()
	s.maxParallel = max
	s.tasksMutex.Unlock()
	s.startNextPending()
}

// Fallback returns the image shown for missing artwork
func (s *Service) Fallback() fyne.Resource {
	return s.fallback
}

// Request returns the image for url when it is available. Otherwise it
// schedules a fetch and returns the fallback with ok set to false; the
// update callback fires once the fetch ends. Failed fetches are not retried.
func (s *Service) Request(url string) (fyne.Resource, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return s.fallback, true
	}

	s.tasksMutex.Lock()
	if t, exists := s.tasks[url]; exists {
		defer s.tasksMutex.Unlock()
		switch t.status {
		case StatusReady:
			return t.res, true
		case StatusFailed:
			return s.fallback, true
		default:
			return s.fallback, false
		}
	}

	t := &task{url: url, status: StatusPending}
	s.tasks[url] = t
	s.queue = append(s.queue, t)
	s.tasksMutex.Unlock()

	s.startNextPending()
	return s.fallback, false
}

// Status returns the fetch state for url
func (s *Service) Status(url string) Status {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	if t, ok := s.tasks[strings.TrimSpace(url)]; ok {
		return t.status
	}
	return StatusUnknown
}

// startNextPending starts queued fetches while capacity allows
func (s *Service) startNextPending() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for s.activeCount < s.maxParallel && len(s.queue) > 0 {
		t := s.queue[0]
		s.queue = s.queue[1:]
		s.activeCount++
		t.status = StatusLoading
		go s.run(t)
	}
}

func (s *Service) run(t *task) {
	defer func() {
		s.tasksMutex.Lock()
		s.activeCount--
		s.tasksMutex.Unlock()
		s.startNextPending()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.fetcher.Fetch(ctx, t.url)
	if err == nil && res == nil {
		err = fmt.Errorf("no image returned for %s", t.url)
	}

	s.tasksMutex.Lock()
	if err != nil {
		t.status = StatusFailed
		t.err = err
		res = s.fallback
	} else {
		t.status = StatusReady
		t.res = res
	}
	callback := s.onUpdate
	s.tasksMutex.Unlock()

	if err != nil {
		logrus.Debugf("Artwork fetch failed for %s: %v", t.url, err)
	}
	if callback != nil {
		callback(t.url, res)
	}
}
