// Package camera implements the decode engine over frames the browser
// uploads from its cameras.
package camera

import (
	"Product-Scanner/domain"
	"Product-Scanner/pkg/scan"
	"bytes"
	"fmt"
	"image"
	"io"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DefaultMaxFrameSide bounds the width and height of an uploaded frame.
const DefaultMaxFrameSide = 4096

type (
	// Hub holds, per user, the cameras the browser announced and the latest
	// frame of each of them.
	Hub struct {
		maxFrameSide int

		mu    sync.RWMutex
		users map[string]*devices
	}

	devices struct {
		cameras          []scan.Camera
		permissionDenied bool
		frames           map[string]frame
	}

	frame struct {
		img image.Image
		seq uint64
	}
)

// NewHub rejects frames wider or taller than maxFrameSide pixels. A
// non-positive value means DefaultMaxFrameSide.
func NewHub(maxFrameSide int) *Hub {
	if maxFrameSide <= 0 {
		maxFrameSide = DefaultMaxFrameSide
	}
	return &Hub{maxFrameSide: maxFrameSide, users: make(map[string]*devices)}
}

// Announce replaces the user's camera list. Frames of cameras still listed
// are kept.
func (h *Hub) Announce(userID string, cameras []scan.Camera, permissionDenied bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.users[userID]
	d := &devices{
		cameras:          append([]scan.Camera(nil), cameras...),
		permissionDenied: permissionDenied,
		frames:           make(map[string]frame),
	}
	if prev != nil {
		for _, c := range cameras {
			if f, ok := prev.frames[c.ID]; ok {
				d.frames[c.ID] = f
			}
		}
	}
	h.users[userID] = d
}

// Devices returns the announced cameras, or domain.ErrCameraPermissionDenied
// when the browser reported a denied permission.
func (h *Hub) Devices(userID string) ([]scan.Camera, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	d, ok := h.users[userID]
	if !ok {
		return nil, nil
	}
	if d.permissionDenied {
		return nil, domain.ErrCameraPermissionDenied
	}
	return append([]scan.Camera(nil), d.cameras...), nil
}

// PushFrame decodes a JPEG, PNG or WebP image and stores it as the latest
// frame of the device. The header is checked against the size limit before
// any pixel buffer is allocated.
func (h *Hub) PushFrame(userID, deviceID string, r io.Reader) error {
	if !h.known(userID, deviceID) {
		return domain.ErrUnknownCamera
	}

	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFrame, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > h.maxFrameSide || cfg.Height > h.maxFrameSide {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", domain.ErrInvalidFrame, cfg.Width, cfg.Height, h.maxFrameSide, h.maxFrameSide)
	}

	img, _, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFrame, err)
	}
	h.store(userID, deviceID, img)
	return nil
}

func (h *Hub) store(userID, deviceID string, img image.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()

	d, ok := h.users[userID]
	if !ok {
		return
	}
	prev := d.frames[deviceID]
	d.frames[deviceID] = frame{img: img, seq: prev.seq + 1}
}

func (h *Hub) known(userID, deviceID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	d, ok := h.users[userID]
	if !ok {
		return false
	}
	for _, c := range d.cameras {
		if c.ID == deviceID {
			return true
		}
	}
	return false
}

func (h *Hub) latest(userID, deviceID string) (frame, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	d, ok := h.users[userID]
	if !ok {
		return frame{}, false
	}
	f, ok := d.frames[deviceID]
	return f, ok
}

// Forget drops everything known about the user.
func (h *Hub) Forget(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.users, userID)
}
