package domain

import "errors"

const (
	StatusIdle      = "idle"
	StatusDetecting = "detecting"
	StatusSuccess   = "success"
	StatusError     = "error"

	CameraPermissionGranted = "granted"
	CameraPermissionDenied  = "denied"
)

var (
	MessageSuccessStartCamera  = "camera started"
	MessageSuccessStopCamera   = "camera stopped"
	MessageSuccessGetSession   = "scan session retrieved successfully"
	MessageSuccessCloseSession = "scan session closed"
	MessageSuccessAnnounce     = "cameras registered"
	MessageSuccessPushFrame    = "frame received"
	MessageSuccessManualScan   = "manual scan completed"
	MessageFailedStartCamera   = "failed to start camera"
	MessageFailedAnnounce      = "failed to register cameras"
	MessageFailedPushFrame     = "failed to process frame"
	MessageFailedManualScan    = "failed to scan value"
	MessageFailedSession       = "failed to access scan session"

	// Copy shown in the scanner UI, one per camera failure kind.
	MessageNoCamera               = "No camera found. Pastikan perangkat memiliki kamera."
	MessageCameraPermissionDenied = "Izin kamera ditolak. Aktifkan izin kamera di pengaturan browser."
	MessageCaptureStartFailed     = "Gagal memulai kamera. Silakan coba lagi."

	ErrNoCamera               = errors.New("no camera found")
	ErrCameraPermissionDenied = errors.New("camera permission denied")
	ErrCaptureStart           = errors.New("failed to start capture")
	ErrCaptureActive          = errors.New("capture already active")
	ErrSessionDisposed        = errors.New("scan session disposed")
	ErrUnknownCamera          = errors.New("unknown camera")
	ErrInvalidFrame           = errors.New("invalid frame image")
)

// CameraErrorMessage maps a capture start failure to its UI copy.
func CameraErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoCamera):
		return MessageNoCamera
	case errors.Is(err, ErrCameraPermissionDenied):
		return MessageCameraPermissionDenied
	default:
		return MessageCaptureStartFailed
	}
}

type (
	ManualScanRequest struct {
		Value string `json:"value" validate:"required"`
	}

	CameraDevice struct {
		ID    string `json:"id" validate:"required"`
		Label string `json:"label"`
	}

	AnnounceCamerasRequest struct {
		Devices    []CameraDevice `json:"devices" validate:"dive"`
		Permission string         `json:"permission" validate:"omitempty,oneof=granted denied"`
	}

	PushFrameRequest struct {
		DeviceID string `form:"device_id" validate:"required"`
	}

	ScanSessionResponse struct {
		CameraActive bool             `json:"camera_active"`
		Status       string           `json:"status"`
		Message      string           `json:"message,omitempty"`
		Product      *ProductResponse `json:"product,omitempty"`
	}
)
