package scan

import (
	"Product-Scanner/domain"
	"context"
)

type (
	// Camera is one capture device reported by the decode engine.
	Camera struct {
		ID    string
		Label string
	}

	// CaptureConfig describes how frames are sampled.
	CaptureConfig struct {
		FPS          int
		DetectionBox int
		AspectRatio  float64
	}

	// DecodeEngine turns camera frames into decoded text. ctx passed to Start
	// bounds only the startup; sampling runs until Stop. Callbacks are
	// delivered serially from the sampling goroutine.
	DecodeEngine interface {
		Cameras(ctx context.Context) ([]Camera, error)
		Start(ctx context.Context, cameraID string, cfg CaptureConfig, onDecode func(text string), onFrameError func()) error
		Stop() error
		IsActive() bool
	}

	ProductFinder interface {
		FindBySerial(ctx context.Context, serial string) (domain.ProductResponse, error)
	}

	HistoryRecorder interface {
		Record(event domain.ScanEvent)
	}

	ScannerRegistrar interface {
		UpsertScanner(ctx context.Context, userID string, req domain.UpsertScannerRequest) (domain.ScannerResponse, error)
	}

	// SelectCamera picks the device to open from a non-empty list.
	SelectCamera func(cameras []Camera) Camera
)

// DefaultCapture samples 10 frames per second inside a 250px square window.
var DefaultCapture = CaptureConfig{
	FPS:          10,
	DetectionBox: 250,
	AspectRatio:  1.0,
}

// SelectLastCamera picks the last enumerated device, which on most phones is
// the rear camera.
func SelectLastCamera(cameras []Camera) Camera {
	return cameras[len(cameras)-1]
}

func SelectFirstCamera(cameras []Camera) Camera {
	return cameras[0]
}

// CameraPolicy resolves a configured policy name, falling back to "last".
func CameraPolicy(name string) SelectCamera {
	if name == "first" {
		return SelectFirstCamera
	}
	return SelectLastCamera
}
