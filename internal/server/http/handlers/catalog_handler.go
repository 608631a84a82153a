package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phan14/du-an-ss2/internal/domain/catalog"
	"github.com/phan14/du-an-ss2/internal/server/http/dto"
)

// CatalogHandler serves the product list and the dashboard.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Products handles GET /api/products?search=&sortBy=name|price&order=asc|desc.
func (h *CatalogHandler) Products(c *gin.Context) {
	q := catalog.Query{
		Search: c.Query("search"),
		SortBy: catalog.SortField(c.DefaultQuery("sortBy", string(catalog.SortByName))),
		Desc:   c.Query("order") == "desc",
	}
	products, err := h.facade.Products(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.ProductResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard handles GET /api/dashboard.
func (h *CatalogHandler) Dashboard(c *gin.Context) {
	s, err := h.facade.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		TotalOrders:    s.TotalOrders,
		PendingOrders:  s.PendingOrders,
		Revenue:        s.Revenue,
		Collected:      s.Collected,
		Remaining:      s.Remaining,
		ItemsOrdered:   s.ItemsOrdered,
		ItemsDelivered: s.ItemsDelivered,
		ProductionRate: s.ProductionRate,
		Urgent:         toUrgentResponses(s.Urgent),
		StatusCounts:   toStatusCountResponses(s.StatusCounts),
		RevenueSeries:  toRevenuePointResponses(s.RevenueSeries),
		Recent:         toOrderResponses(s.Recent),
	})
}
