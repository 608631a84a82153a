package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/server/http/dto"
)

// GluingHandler manages lamination records.
type GluingHandler struct {
	facade GluingFacade
}

// NewGluingHandler constructs GluingHandler.
func NewGluingHandler(facade GluingFacade) *GluingHandler {
	return &GluingHandler{facade: facade}
}

// List handles GET /api/gluing.
func (h *GluingHandler) List(c *gin.Context) {
	records, err := h.facade.GluingRecords(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.GluingResponse, 0, len(records))
	for _, g := range records {
		resp = append(resp, toGluingResponse(g))
	}
	c.JSON(http.StatusOK, resp)
}

// Save handles POST /api/gluing.
func (h *GluingHandler) Save(c *gin.Context) {
	var req dto.GluingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	record, err := h.facade.SaveGluing(c.Request.Context(), model.GluingRecord(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGluingResponse(*record))
}

// Delete handles DELETE /api/gluing/:id.
func (h *GluingHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteGluing(c.Request.Context(), CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export handles GET /api/gluing/export.
func (h *GluingHandler) Export(c *gin.Context) {
	name, content, err := h.facade.ExportGluing(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	sendWorkbook(c, name, content)
}
