package camera

import (
	"Product-Scanner/domain"
	"Product-Scanner/pkg/scan"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/jonboulle/clockwork"
)

var errAlreadySampling = errors.New("camera already sampling")

// Engine samples one user's uploaded frames and decodes them. It implements
// scan.DecodeEngine.
type Engine struct {
	hub     *Hub
	userID  string
	decoder *Decoder
	clock   clockwork.Clock

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewEngine(hub *Hub, userID string, clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		hub:     hub,
		userID:  userID,
		decoder: NewDecoder(),
		clock:   clock,
	}
}

func (e *Engine) Cameras(ctx context.Context) ([]scan.Camera, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.hub.Devices(e.userID)
}

func (e *Engine) Start(ctx context.Context, cameraID string, cfg scan.CaptureConfig, onDecode func(string), onFrameError func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stop != nil {
		return errAlreadySampling
	}
	if !e.hub.known(e.userID, cameraID) {
		return domain.ErrUnknownCamera
	}
	if cfg.FPS <= 0 {
		cfg.FPS = scan.DefaultCapture.FPS
	}

	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	ticker := e.clock.NewTicker(time.Second / time.Duration(cfg.FPS))
	go e.sample(ticker, cameraID, cfg, onDecode, onFrameError, e.stop, e.done)
	return nil
}

func (e *Engine) sample(ticker clockwork.Ticker, cameraID string, cfg scan.CaptureConfig, onDecode func(string), onFrameError func(), stop, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	var seen uint64
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
		}

		f, ok := e.hub.latest(e.userID, cameraID)
		if !ok || f.seq == seen {
			continue
		}
		seen = f.seq

		text, err := e.decoder.Decode(f.img, cfg)
		if err != nil {
			if onFrameError != nil {
				onFrameError()
			}
			continue
		}
		onDecode(text)
	}
}

// Stop halts sampling and waits for the sampler to exit. It is a no-op when
// nothing is running.
func (e *Engine) Stop() error {
	e.mu.Lock()
	stop, done := e.stop, e.done
	e.stop, e.done = nil, nil
	e.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	log.Debugw("camera sampling stopped", "user_id", e.userID)
	return nil
}

func (e *Engine) IsActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stop != nil
}
