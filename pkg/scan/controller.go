// Package scan drives a user's scan session: camera lifecycle, debounced
// decode handling, product lookup and the status shown to the UI.
package scan

import (
	"Product-Scanner/domain"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/jonboulle/clockwork"
)

const (
	defaultDebounceDelay = 300 * time.Millisecond
	defaultResetDelay    = 2 * time.Second
)

// Options wires a Controller. Only Engine and Products are required.
type Options struct {
	UserID   string
	Engine   DecodeEngine
	Products ProductFinder
	History  HistoryRecorder
	Scanners ScannerRegistrar

	Clock         clockwork.Clock
	SelectCamera  SelectCamera
	Capture       CaptureConfig
	DebounceDelay time.Duration
	ResetDelay    time.Duration
}

// Controller owns one scan session. It is safe for concurrent use.
type Controller struct {
	userID   string
	engine   DecodeEngine
	products ProductFinder
	history  HistoryRecorder
	scanners ScannerRegistrar

	clock         clockwork.Clock
	selectCamera  SelectCamera
	capture       CaptureConfig
	debounceDelay time.Duration
	resetDelay    time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	// lifecycle serializes StartCapture, StopCapture and Dispose.
	lifecycle sync.Mutex

	mu           sync.Mutex
	cameraActive bool
	status       string
	message      string
	product      *domain.ProductResponse
	generation   uint64
	resetSeq     uint64
	resetTimer   clockwork.Timer
	disposed     bool
}

func NewController(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.SelectCamera == nil {
		opts.SelectCamera = SelectLastCamera
	}
	if opts.Capture.FPS <= 0 {
		opts.Capture = DefaultCapture
	}
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = defaultDebounceDelay
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = defaultResetDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		userID:        opts.UserID,
		engine:        opts.Engine,
		products:      opts.Products,
		history:       opts.History,
		scanners:      opts.Scanners,
		clock:         opts.Clock,
		selectCamera:  opts.SelectCamera,
		capture:       opts.Capture,
		debounceDelay: opts.DebounceDelay,
		resetDelay:    opts.ResetDelay,
		ctx:           ctx,
		cancel:        cancel,
		status:        domain.StatusIdle,
	}
}

// State returns a snapshot for the UI.
func (c *Controller) State() domain.ScanSessionResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// StartCapture opens a camera and starts sampling. On failure the session
// keeps its status, the camera stays inactive and the message carries the
// copy for the failure kind.
func (c *Controller) StartCapture(ctx context.Context) (domain.ScanSessionResponse, error) {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.disposed {
		defer c.mu.Unlock()
		return c.snapshotLocked(), domain.ErrSessionDisposed
	}
	if c.cameraActive {
		defer c.mu.Unlock()
		return c.snapshotLocked(), domain.ErrCaptureActive
	}
	gen := c.generation
	c.mu.Unlock()

	camera, err := c.openCamera(ctx, gen)

	c.mu.Lock()
	if err != nil {
		c.cameraActive = false
		c.message = domain.CameraErrorMessage(err)
		state := c.snapshotLocked()
		c.mu.Unlock()

		log.Warnw("failed to start camera", "user_id", c.userID, "error", err)
		return state, err
	}
	c.cameraActive = true
	c.message = ""
	state := c.snapshotLocked()
	c.mu.Unlock()

	log.Infow("camera started", "user_id", c.userID, "camera_id", camera.ID)
	c.registerCamera(ctx, camera)
	return state, nil
}

func (c *Controller) openCamera(ctx context.Context, gen uint64) (Camera, error) {
	cameras, err := c.engine.Cameras(ctx)
	if err != nil {
		return Camera{}, captureError(err)
	}
	if len(cameras) == 0 {
		return Camera{}, domain.ErrNoCamera
	}

	camera := c.selectCamera(cameras)
	if err := c.engine.Start(ctx, camera.ID, c.capture, c.onDecode(gen), c.onFrameError); err != nil {
		return Camera{}, captureError(err)
	}
	return camera, nil
}

func captureError(err error) error {
	if errors.Is(err, domain.ErrNoCamera) || errors.Is(err, domain.ErrCameraPermissionDenied) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrCaptureStart, err)
}

// registerCamera records the opened device as today's camera profile.
func (c *Controller) registerCamera(ctx context.Context, camera Camera) {
	if c.scanners == nil || c.userID == "" {
		return
	}

	_, err := c.scanners.UpsertScanner(ctx, c.userID, domain.UpsertScannerRequest{
		Name: "Kamera " + c.clock.Now().Format("02-01-2006"),
		Type: domain.ScannerTypeCamera,
		Metadata: map[string]any{
			"camera_id": camera.ID,
			"label":     camera.Label,
		},
	})
	if err != nil {
		log.Warnw("failed to register camera scanner", "user_id", c.userID, "camera_id", camera.ID, "error", err)
	}
}

// StopCapture halts sampling and returns to idle. It is idempotent.
func (c *Controller) StopCapture() domain.ScanSessionResponse {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	c.generation++
	wasActive := c.cameraActive
	c.cameraActive = false
	c.status = domain.StatusIdle
	c.message = ""
	c.mu.Unlock()

	// The sampler may be inside a decode callback, so stop outside mu.
	if wasActive || c.engine.IsActive() {
		if err := c.engine.Stop(); err != nil {
			log.Warnw("failed to stop camera", "user_id", c.userID, "error", err)
		}
	}
	return c.State()
}

// Dispose force-stops capture and rejects any further use of the session.
func (c *Controller) Dispose() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.generation++
	c.cancelResetLocked()
	c.cameraActive = false
	c.status = domain.StatusIdle
	c.mu.Unlock()

	c.cancel()
	if err := c.engine.Stop(); err != nil {
		log.Warnw("failed to stop camera", "user_id", c.userID, "error", err)
	}
}

// Lookup searches value immediately, as the manual input does, and returns
// the state after the lookup settled.
func (c *Controller) Lookup(ctx context.Context, value string, method string) (domain.ScanSessionResponse, error) {
	c.mu.Lock()
	if c.disposed {
		defer c.mu.Unlock()
		return c.snapshotLocked(), domain.ErrSessionDisposed
	}
	gen := c.generation
	c.mu.Unlock()

	value = strings.TrimSpace(value)
	if value == "" {
		return c.State(), nil
	}
	return c.lookup(ctx, gen, value, method), nil
}

// onDecode debounces every decode into its own delayed lookup. Lookups
// scheduled under an older generation are dropped when they fire.
func (c *Controller) onDecode(gen uint64) func(string) {
	return func(text string) {
		value := strings.TrimSpace(text)
		if value == "" {
			return
		}
		c.clock.AfterFunc(c.debounceDelay, func() {
			c.lookup(c.ctx, gen, value, domain.MethodCamera)
		})
	}
}

func (c *Controller) onFrameError() {}

func (c *Controller) lookup(ctx context.Context, gen uint64, value string, method string) domain.ScanSessionResponse {
	c.mu.Lock()
	if c.disposed || gen != c.generation {
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}
	c.cancelResetLocked()
	c.status = domain.StatusDetecting
	c.message = ""
	c.mu.Unlock()

	product, err := c.products.FindBySerial(ctx, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || gen != c.generation {
		log.Debugw("discarding stale lookup", "user_id", c.userID, "value", value)
		return c.snapshotLocked()
	}

	switch {
	case err == nil:
		c.status = domain.StatusSuccess
		c.message = ""
		c.product = &product
		if c.history != nil {
			c.history.Record(domain.ScanEvent{UserID: c.userID, Value: value, Method: method})
		}
	case errors.Is(err, domain.ErrProductNotFound):
		c.status = domain.StatusError
		c.message = domain.MessageProductNotFound
		c.product = nil
	default:
		log.Errorw("product lookup failed", "user_id", c.userID, "value", value, "error", err)
		c.status = domain.StatusError
		c.message = domain.MessageLookupFailed
		c.product = nil
	}

	c.scheduleResetLocked()
	return c.snapshotLocked()
}

// scheduleResetLocked returns the status to idle after resetDelay. The
// displayed product stays until the next lookup.
func (c *Controller) scheduleResetLocked() {
	c.cancelResetLocked()
	seq := c.resetSeq
	c.resetTimer = c.clock.AfterFunc(c.resetDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.disposed || seq != c.resetSeq {
			return
		}
		c.status = domain.StatusIdle
		c.message = ""
		c.resetTimer = nil
	})
}

func (c *Controller) cancelResetLocked() {
	c.resetSeq++
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}

func (c *Controller) snapshotLocked() domain.ScanSessionResponse {
	state := domain.ScanSessionResponse{
		CameraActive: c.cameraActive,
		Status:       c.status,
		Message:      c.message,
	}
	if c.product != nil {
		product := *c.product
		state.Product = &product
	}
	return state
}
