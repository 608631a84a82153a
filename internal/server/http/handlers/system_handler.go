package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phan14/du-an-ss2/internal/server/http/dto"
)

// SystemHandler covers spreadsheet import, export, backup and restore.
type SystemHandler struct {
	facade SystemFacade
}

// NewSystemHandler constructs SystemHandler.
func NewSystemHandler(facade SystemFacade) *SystemHandler {
	return &SystemHandler{facade: facade}
}

// Import handles POST /api/orders/import with a multipart "file" field.
func (h *SystemHandler) Import(c *gin.Context) {
	header, err := c.FormFile(uploadFormField)
	if err != nil {
		badRequest(c, err)
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	summary, err := h.facade.ImportOrders(c.Request.Context(), CurrentUser(c), file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ImportResponse{Customers: summary.Customers, Orders: summary.Orders, Skipped: summary.Skipped})
}

// ExportOrders handles GET /api/orders/export with the same filters as the listing.
func (h *SystemHandler) ExportOrders(c *gin.Context) {
	filter, err := orderFilter(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	name, content, err := h.facade.ExportOrders(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	sendWorkbook(c, name, content)
}

// Backup handles GET /api/system/backup.
func (h *SystemHandler) Backup(c *gin.Context) {
	name, content, err := h.facade.Backup(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	sendWorkbook(c, name, content)
}

// BackupStatus handles GET /api/system/backup/status.
func (h *SystemHandler) BackupStatus(c *gin.Context) {
	status, err := h.facade.BackupStatus(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := dto.BackupStatusResponse{Due: status.Due}
	if !status.LastBackup.IsZero() {
		last := status.LastBackup
		resp.LastBackup = &last
	}
	c.JSON(http.StatusOK, resp)
}

// Restore handles POST /api/system/restore with a multipart "file" field.
func (h *SystemHandler) Restore(c *gin.Context) {
	header, err := c.FormFile(uploadFormField)
	if err != nil {
		badRequest(c, err)
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	snap, err := h.facade.Restore(c.Request.Context(), CurrentUser(c), file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RestoreResponse{
		Customers: len(snap.Customers),
		Orders:    len(snap.Orders),
		Gluing:    len(snap.Gluing),
		Users:     len(snap.Users),
	})
}
