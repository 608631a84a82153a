package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/server/http/dto"
	"github.com/phan14/du-an-ss2/internal/usecase"
)

var errUnknownStatus = errors.New("unknown order status")

// OrderHandler manages order and delivery endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// orderFilter reads ?search=&status=&customerId= from the query string.
func orderFilter(c *gin.Context) (usecase.OrderFilter, error) {
	filter := usecase.OrderFilter{
		Search:     c.Query("search"),
		CustomerID: c.Query("customerId"),
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := model.ParseOrderStatus(raw)
		if !ok {
			return filter, errUnknownStatus
		}
		filter.Status = status
	}
	return filter, nil
}

// List handles GET /api/orders. Loading the order book also raises deadline alerts.
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := orderFilter(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	orders, err := h.facade.Orders(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Reload handles POST /api/orders/reload.
func (h *OrderHandler) Reload(c *gin.Context) {
	orders, err := h.facade.ReloadOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in := usecase.NewOrder{
		CustomerID:     req.CustomerID,
		Items:          toItems(req.Items),
		DepositAmount:  req.DepositAmount,
		ProductionDays: req.ProductionDays,
		Notes:          req.Notes,
		Analysis:       req.Analysis,
	}
	if req.OrderDate != nil {
		in.OrderDate = *req.OrderDate
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		status = model.OrderStatus(req.Status)
	}
	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), status, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// AddDelivery handles POST /api/orders/:id/deliveries.
// An over-delivery answers 409 until the client repeats the call with confirmOverDelivery.
func (h *OrderHandler) AddDelivery(c *gin.Context) {
	var req dto.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev := model.DeliveryRecord{
		Date:     req.Date,
		Quantity: req.Quantity,
		Payment:  req.PaymentReceived,
		Note:     req.Notes,
	}
	order, err := h.facade.AddDelivery(c.Request.Context(), c.Param("id"), ev, req.ConfirmOverDelivery)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// RemoveDelivery handles DELETE /api/orders/:id/deliveries/:eventID.
func (h *OrderHandler) RemoveDelivery(c *gin.Context) {
	order, err := h.facade.RemoveDelivery(c.Request.Context(), c.Param("id"), c.Param("eventID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Balance handles GET /api/orders/:id/balance.
func (h *OrderHandler) Balance(c *gin.Context) {
	balance, err := h.facade.OrderBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{TotalPaid: balance.TotalPaid, Remaining: balance.Remaining})
}

// Urgent handles GET /api/orders/urgent.
func (h *OrderHandler) Urgent(c *gin.Context) {
	entries, err := h.facade.UrgentOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUrgentResponses(entries))
}

// Report handles POST /api/orders/:id/report.
func (h *OrderHandler) Report(c *gin.Context) {
	if err := h.facade.ReportOrder(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
