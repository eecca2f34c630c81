package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"matrimonial/services/preview"
	"matrimonial/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PreviewHandler serves staged photos before they are uploaded.
type PreviewHandler struct {
	Store preview.Store
}

func NewPreviewHandler(store preview.Store) *PreviewHandler {
	return &PreviewHandler{Store: store}
}

// GetPreviewHandler streams the staged bytes; ?thumb=1 returns a JPEG thumbnail
// and ?size=N picks its bounding box.
func (h *PreviewHandler) GetPreviewHandler(c *gin.Context) {
	blob, err := h.Store.Open(c.Request.Context(), preview.Handle(c.Param("handle")))
	if err != nil {
		if errors.Is(err, preview.ErrUnknownHandle) {
			utils.JSONError(c, http.StatusNotFound, "Preview not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Could not load preview", err.Error())
		return
	}

	c.Header("Cache-Control", "private, no-store")
	if c.Query("thumb") == "" || c.Query("thumb") == "0" {
		c.Data(http.StatusOK, blob.ContentType, blob.Data)
		return
	}

	side, _ := strconv.Atoi(c.Query("size"))
	if side > 1024 {
		side = 1024
	}
	thumb, err := preview.Thumbnail(blob, side)
	if err != nil {
		getLogger(c).Debug("Thumbnail rendering failed", zap.Error(err))
		utils.JSONError(c, http.StatusUnprocessableEntity, "Could not render a thumbnail for this photo", err.Error())
		return
	}
	c.Data(http.StatusOK, "image/jpeg", thumb)
}
