package history

import (
	"Product-Scanner/domain"
	"Product-Scanner/entities"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const writeTimeout = 10 * time.Second

var (
	errRecorderClosed = errors.New("recorder closed")
	errQueueFull      = errors.New("history queue full")
)

type (
	// Recorder appends scan events in the background. Record never blocks
	// and never reports a failure to its caller.
	Recorder interface {
		Record(event domain.ScanEvent)
		Close()
	}

	// FailureHook observes events that could not be written.
	FailureHook func(event domain.ScanEvent, err error)

	recorder struct {
		historyRepository HistoryRepository
		onFailure         FailureHook
		events            chan domain.ScanEvent
		wg                sync.WaitGroup

		mu     sync.RWMutex
		closed bool
	}
)

// NewRecorder starts workers goroutines draining a queue of queueSize events.
// onFailure may be nil.
func NewRecorder(historyRepository HistoryRepository, workers, queueSize int, onFailure FailureHook) Recorder {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers * 2
	}

	r := &recorder{
		historyRepository: historyRepository,
		onFailure:         onFailure,
		events:            make(chan domain.ScanEvent, queueSize),
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	return r
}

func (r *recorder) Record(event domain.ScanEvent) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.fail(event, errRecorderClosed)
		return
	}

	select {
	case r.events <- event:
	default:
		r.fail(event, errQueueFull)
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (r *recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.events)
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *recorder) worker() {
	defer r.wg.Done()

	for event := range r.events {
		r.write(event)
	}
}

func (r *recorder) write(event domain.ScanEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			r.fail(event, fmt.Errorf("panic writing history: %v", rec))
		}
	}()

	userUUID, err := uuid.Parse(event.UserID)
	if err != nil {
		r.fail(event, domain.ErrParseUUID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err = r.historyRepository.CreateScanHistory(ctx, &entities.ScanHistory{
		UserID:       userUUID,
		ScannedValue: event.Value,
		Method:       event.Method,
	})
	if err != nil {
		r.fail(event, err)
	}
}

func (r *recorder) fail(event domain.ScanEvent, err error) {
	log.Warnw("scan history not recorded", "user_id", event.UserID, "method", event.Method, "error", err)
	if r.onFailure != nil {
		r.onFailure(event, err)
	}
}
