package handlers

import (
	"Product-Scanner/domain"
	"Product-Scanner/internal/api/presenters"
	"Product-Scanner/pkg/camera"
	"Product-Scanner/pkg/scan"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ScanHandler interface {
		AnnounceCameras(c *fiber.Ctx) error
		StartCamera(c *fiber.Ctx) error
		StopCamera(c *fiber.Ctx) error
		PushFrame(c *fiber.Ctx) error
		ManualScan(c *fiber.Ctx) error
		GetSession(c *fiber.Ctx) error
		CloseSession(c *fiber.Ctx) error
	}

	scanHandler struct {
		sessions  *scan.Manager
		hub       *camera.Hub
		validator *validator.Validate
	}
)

func NewScanHandler(sessions *scan.Manager, hub *camera.Hub, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		sessions:  sessions,
		hub:       hub,
		validator: validator,
	}
}

var idleSession = domain.ScanSessionResponse{Status: domain.StatusIdle}

func (h *scanHandler) AnnounceCameras(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AnnounceCamerasRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnnounce, err)
	}

	cameras := make([]scan.Camera, 0, len(req.Devices))
	for _, d := range req.Devices {
		cameras = append(cameras, scan.Camera{ID: d.ID, Label: d.Label})
	}
	h.hub.Announce(userID, cameras, req.Permission == domain.CameraPermissionDenied)

	return presenters.SuccessResponse(c, req.Devices, fiber.StatusOK, domain.MessageSuccessAnnounce)
}

func (h *scanHandler) StartCamera(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	session, err := h.sessions.Session(userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedSession, err)
	}

	state, err := session.StartCapture(c.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCaptureActive):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedStartCamera, err)
		case errors.Is(err, domain.ErrSessionDisposed):
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedSession, err)
		case errors.Is(err, domain.ErrNoCamera):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, state.Message, err)
		case errors.Is(err, domain.ErrCameraPermissionDenied):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, state.Message, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, state.Message, err)
		}
	}

	return presenters.SuccessResponse(c, state, fiber.StatusOK, domain.MessageSuccessStartCamera)
}

func (h *scanHandler) StopCamera(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	session, ok := h.sessions.Peek(userID)
	if !ok {
		return presenters.SuccessResponse(c, idleSession, fiber.StatusOK, domain.MessageSuccessStopCamera)
	}

	return presenters.SuccessResponse(c, session.StopCapture(), fiber.StatusOK, domain.MessageSuccessStopCamera)
}

func (h *scanHandler) PushFrame(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := &domain.PushFrameRequest{DeviceID: c.FormValue("device_id")}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPushFrame, err)
	}

	file, err := c.FormFile("frame")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPushFrame, err)
	}
	src, err := file.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPushFrame, err)
	}
	defer src.Close()

	h.sessions.Touch(userID)
	if err := h.hub.PushFrame(userID, req.DeviceID, src); err != nil {
		if errors.Is(err, domain.ErrUnknownCamera) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedPushFrame, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPushFrame, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusAccepted, domain.MessageSuccessPushFrame)
}

func (h *scanHandler) ManualScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ManualScanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedManualScan, err)
	}

	session, err := h.sessions.Session(userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedSession, err)
	}

	state, err := session.Lookup(c.Context(), req.Value, domain.MethodManual)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedSession, err)
	}

	// A miss is still a completed scan; the outcome lives in state.
	return presenters.SuccessResponse(c, state, fiber.StatusOK, domain.MessageSuccessManualScan)
}

func (h *scanHandler) GetSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	session, ok := h.sessions.Peek(userID)
	if !ok {
		return presenters.SuccessResponse(c, idleSession, fiber.StatusOK, domain.MessageSuccessGetSession)
	}

	return presenters.SuccessResponse(c, session.State(), fiber.StatusOK, domain.MessageSuccessGetSession)
}

func (h *scanHandler) CloseSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	h.sessions.Dispose(userID)
	h.hub.Forget(userID)

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCloseSession)
}
