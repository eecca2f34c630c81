package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	profileRepo "matrimonial/database/repository/profile"
	"matrimonial/services/photos"
	"matrimonial/services/profile"
	"matrimonial/services/wizard"
	"matrimonial/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileStores hands out the profile store bound to one user.
type ProfileStores interface {
	ForUser(userID string) wizard.ProfileStore
}

// SessionOpener builds the session context a wizard runs against.
type SessionOpener func(ctx context.Context, userID string) (wizard.SessionContext, error)

type WizardHandler struct {
	Registry *wizard.Registry
	Stores   ProfileStores
	Sessions SessionOpener
}

func NewWizardHandler(registry *wizard.Registry, stores ProfileStores, sessions SessionOpener) *WizardHandler {
	return &WizardHandler{Registry: registry, Stores: stores, Sessions: sessions}
}

// WizardResponse is the body of every wizard endpoint.
type WizardResponse struct {
	SessionID string          `json:"sessionId"`
	State     wizard.State    `json:"state"`
	Events    []wizard.Event  `json:"events"`
	Result    *SubmitResponse `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type SubmitResponse struct {
	Created        bool   `json:"created"`
	PhotosUploaded int    `json:"photosUploaded"`
	UploadError    string `json:"uploadError,omitempty"`
}

type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

type ToggleItemRequest struct {
	Field string `json:"field" binding:"required"`
	Item  string `json:"item" binding:"required"`
}

type JumpRequest struct {
	Step int `json:"step" binding:"required,min=1"`
}

func (h *WizardHandler) OpenSessionHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString(utils.ContextUserID)

	sess, err := h.Sessions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to open user session", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not start the profile wizard", err.Error())
		return
	}
	s, err := h.Registry.Open(c.Request.Context(), h.Stores.ForUser(userID), sess)
	if err != nil {
		h.fail(c, nil, err)
		return
	}
	h.respond(c, http.StatusCreated, s, nil)
}

func (h *WizardHandler) GetSessionHandler(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, s, nil)
}

func (h *WizardHandler) CloseSessionHandler(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.Registry.Close(c.Request.Context(), s.ID); err != nil {
		h.fail(c, nil, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WizardHandler) UpdateFieldHandler(c *gin.Context) {
	var req UpdateFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.UpdateField(req.Field, req.Value)
	})
}

func (h *WizardHandler) ToggleItemHandler(c *gin.Context) {
	var req ToggleItemRequest
	if !bindJSON(c, &req) {
		return
	}
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.ToggleItem(req.Field, req.Item)
	})
}

func (h *WizardHandler) NextStepHandler(c *gin.Context) {
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.Advance()
	})
}

func (h *WizardHandler) PreviousStepHandler(c *gin.Context) {
	h.run(c, func(ctrl *wizard.Controller) error {
		ctrl.Retreat()
		return nil
	})
}

// JumpToStepHandler ignores forward jumps; the state tells the client where it is.
func (h *WizardHandler) JumpToStepHandler(c *gin.Context) {
	var req JumpRequest
	if !bindJSON(c, &req) {
		return
	}
	h.run(c, func(ctrl *wizard.Controller) error {
		ctrl.JumpTo(req.Step)
		return nil
	})
}

func (h *WizardHandler) AddPhotosHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid upload", err.Error())
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No files were provided", "expected multipart field \"files\"")
		return
	}

	files := make([]photos.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Could not read "+fh.Filename, err.Error())
			return
		}
		// One byte past the limit is enough for the size check to reject it.
		data, err := io.ReadAll(io.LimitReader(f, photos.MaxFileSize+1))
		f.Close()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Could not read "+fh.Filename, err.Error())
			return
		}
		ct := fh.Header.Get("Content-Type")
		if ct == "application/octet-stream" {
			// Generic clients send this for every file; let the content decide.
			ct = ""
		}
		files = append(files, photos.File{Name: fh.Filename, ContentType: ct, Data: data})
	}

	h.run(c, func(ctrl *wizard.Controller) error {
		_, err := ctrl.AddPhotos(c.Request.Context(), files)
		return err
	})
}

func (h *WizardHandler) RemovePhotoHandler(c *gin.Context) {
	index, ok := photoIndex(c)
	if !ok {
		return
	}
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.RemovePhoto(c.Request.Context(), index)
	})
}

func (h *WizardHandler) SetPrimaryPhotoHandler(c *gin.Context) {
	index, ok := photoIndex(c)
	if !ok {
		return
	}
	h.run(c, func(ctrl *wizard.Controller) error {
		return ctrl.SetPrimaryPhoto(index)
	})
}

// SubmitHandler persists the profile. A successful submit ends the session.
func (h *WizardHandler) SubmitHandler(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	res, err := s.Submit(c.Request.Context())
	if err != nil {
		h.fail(c, s, err)
		return
	}

	out := &SubmitResponse{Created: res.Created, PhotosUploaded: res.PhotosUploaded}
	if res.UploadErr != nil {
		out.UploadError = res.UploadErr.Error()
		getLogger(c).Warn("Profile saved but photos failed to upload", zap.String("sessionID", s.ID), zap.Error(res.UploadErr))
	}
	body := h.snapshot(s)
	body.Result = out

	if err := h.Registry.Close(c.Request.Context(), s.ID); err != nil {
		getLogger(c).Warn("Failed to close submitted wizard session", zap.String("sessionID", s.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, body)
}

// StatusHandler reports the loading flag and progress text; it does not wait for a
// running submit.
func (h *WizardHandler) StatusHandler(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "status": s.Status()})
}

func (h *WizardHandler) StepsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"steps": wizard.Steps()})
}

// run applies fn to the session named in the path and responds with the new state.
func (h *WizardHandler) run(c *gin.Context, fn func(*wizard.Controller) error) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Do(fn); err != nil {
		h.fail(c, s, err)
		return
	}
	h.respond(c, http.StatusOK, s, nil)
}

func (h *WizardHandler) session(c *gin.Context) (*wizard.Session, bool) {
	s, err := h.Registry.Get(c.Param("id"), c.GetString(utils.ContextUserID))
	if err != nil {
		h.fail(c, nil, err)
		return nil, false
	}
	return s, true
}

func (h *WizardHandler) snapshot(s *wizard.Session) WizardResponse {
	var state wizard.State
	_ = s.Do(func(ctrl *wizard.Controller) error {
		state = ctrl.State()
		return nil
	})
	events := s.Events()
	if events == nil {
		events = []wizard.Event{}
	}
	return WizardResponse{SessionID: s.ID, State: state, Events: events}
}

func (h *WizardHandler) respond(c *gin.Context, status int, s *wizard.Session, err error) {
	body := h.snapshot(s)
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(status, body)
}

// fail maps wizard errors to statuses. Errors the user can act on come back with
// the session state so the client can render the message in place.
func (h *WizardHandler) fail(c *gin.Context, s *wizard.Session, err error) {
	var (
		verr    *wizard.ValidationError
		capErr  *photos.CapacityError
		invalid *profile.InvalidPayloadError
		saveErr *profile.SaveError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Wizard session not found", "")
		return
	case errors.Is(err, wizard.ErrNotApplicable):
		utils.JSONError(c, http.StatusForbidden, err.Error(), "")
		return
	case errors.Is(err, wizard.ErrUnknownField), errors.Is(err, wizard.ErrNotASetField),
		errors.Is(err, photos.ErrIndexOutOfRange):
		status = http.StatusBadRequest
	case errors.As(err, &verr), errors.As(err, &capErr), errors.As(err, &invalid):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, wizard.ErrSubmitInProgress), errors.Is(err, wizard.ErrAlreadySubmitted),
		errors.Is(err, profileRepo.ErrProfileExists), errors.Is(err, profileRepo.ErrProfileNotFound):
		status = http.StatusConflict
	case errors.As(err, &saveErr):
		status = http.StatusBadGateway
	}

	if s == nil {
		utils.JSONError(c, status, err.Error(), "")
		return
	}
	if errors.Is(err, wizard.ErrSubmitInProgress) {
		// The running submit holds the session; report progress without waiting on it.
		c.AbortWithStatusJSON(status, gin.H{"message": err.Error(), "status": s.Status()})
		return
	}
	if status >= http.StatusInternalServerError {
		getLogger(c).Error("Wizard operation failed", zap.String("sessionID", s.ID), zap.Error(err))
	}
	h.respond(c, status, s, err)
}

func photoIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Photo index must be a number", err.Error())
		return 0, false
	}
	return index, true
}
