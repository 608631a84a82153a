package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/server/http/dto"
)

// CustomerHandler manages customer endpoints.
type CustomerHandler struct {
	facade CustomerFacade
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(facade CustomerFacade) *CustomerHandler {
	return &CustomerHandler{facade: facade}
}

// List handles GET /api/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.facade.Customers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for _, cu := range customers {
		resp = append(resp, toCustomerResponse(cu))
	}
	c.JSON(http.StatusOK, resp)
}

// Save handles POST /api/customers.
func (h *CustomerHandler) Save(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.facade.SaveCustomer(c.Request.Context(), model.Customer{
		ID:      req.ID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

// Delete handles DELETE /api/customers/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteCustomer(c.Request.Context(), CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/customers/:id/stats.
func (h *CustomerHandler) Stats(c *gin.Context) {
	st, err := h.facade.CustomerStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CustomerStatsResponse{
		Customer: toCustomerResponse(st.Customer),
		Timeline: toPeriodResponses(st.Timeline),
	})
}

// ExportStats handles GET /api/customers/:id/stats/export.
func (h *CustomerHandler) ExportStats(c *gin.Context) {
	name, content, err := h.facade.ExportCustomerStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	sendWorkbook(c, name, content)
}
