package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	app "github.com/NenadVrtue/webshop-triangle/internal/application/order"
	domain "github.com/NenadVrtue/webshop-triangle/internal/domain/order"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// userIDKey is set by the authentication middleware upstream; absence
// means a guest order.
const userIDKey = "user_id"

type OrderHandler struct {
	svc *app.Service
	log logger.Logger
}

func NewOrderHandler(svc *app.Service, log logger.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

type submitOrderRequest struct {
	Discount      decimal.Decimal `json:"discount"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	CompanyName   string          `json:"company_name"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	PostalCode    string          `json:"postal_code"`
	Notes         string          `json:"notes"`
	Items         []app.LineInput `json:"items"`
}

func (r submitOrderRequest) toCommand(userID *int64) app.SubmitOrderCommand {
	return app.SubmitOrderCommand{
		UserID:        userID,
		Discount:      r.Discount,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		CompanyName:   r.CompanyName,
		Address:       r.Address,
		City:          r.City,
		PostalCode:    r.PostalCode,
		Notes:         r.Notes,
		Items:         r.Items,
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req submitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Submit(c.Request.Context(), req.toCommand(contextUserID(c)))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(created))
}

func (h *OrderHandler) PreviewOrder(c *gin.Context) {
	var req struct {
		Discount decimal.Decimal `json:"discount"`
		Items    []app.LineInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quote, err := h.svc.Preview(c.Request.Context(), req.Items, req.Discount)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.svc.UpdateStatus(c.Request.Context(), id, domain.Status(req.Status))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(o))
}

// renderError maps the error taxonomy onto HTTP responses: validation
// failures list every violated field, everything else is a generic
// message with the detail kept in the logs.
func (h *OrderHandler) renderError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
		return
	}

	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		h.log.Warn("order referenced unknown tire", logger.Int64("tire_id", nf.TireID))
		c.JSON(http.StatusNotFound, gin.H{"error": "could not create order"})
		return
	}

	if errors.Is(err, domain.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if errors.Is(err, domain.ErrInvalidTransition) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status transition not allowed"})
		return
	}

	h.log.Error("order request failed", logger.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create order"})
}

func contextUserID(c *gin.Context) *int64 {
	v, exists := c.Get(userIDKey)
	if !exists {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}

/* ================= responses ================= */

type tireResponse struct {
	ID         int64               `json:"id"`
	Code       string              `json:"code"`
	Name       string              `json:"name"`
	Type       string              `json:"type"`
	Dimensions string              `json:"dimensions"`
	Brand      string              `json:"brand"`
	Price      decimal.NullDecimal `json:"price"`
}

type orderItemResponse struct {
	ID         int64           `json:"id"`
	TireID     int64           `json:"tire_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Tire       *tireResponse   `json:"tire"`
}

type orderResponse struct {
	ID             int64               `json:"id"`
	UserID         *int64              `json:"user_id"`
	Status         string              `json:"status"`
	OrderDate      time.Time           `json:"order_date"`
	CustomerName   string              `json:"customer_name"`
	CustomerEmail  string              `json:"customer_email"`
	CustomerPhone  string              `json:"customer_phone"`
	CompanyName    string              `json:"company_name"`
	Address        string              `json:"address"`
	City           string              `json:"city"`
	PostalCode     string              `json:"postal_code"`
	Notes          string              `json:"notes"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	Total          decimal.Decimal     `json:"total"`
	Items          []orderItemResponse `json:"items"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		Status:         string(o.Status),
		OrderDate:      o.OrderDate,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		CustomerPhone:  o.CustomerPhone,
		CompanyName:    o.CompanyName,
		Address:        o.Address,
		City:           o.City,
		PostalCode:     o.PostalCode,
		Notes:          o.Notes,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		Total:          o.Total,
		Items:          make([]orderItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		ir := orderItemResponse{
			ID:         item.ID,
			TireID:     item.TireID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
		if item.Tire != nil {
			ir.Tire = &tireResponse{
				ID:         item.Tire.ID,
				Code:       item.Tire.Code,
				Name:       item.Tire.Name,
				Type:       item.Tire.Type,
				Dimensions: item.Tire.Dimensions,
				Brand:      item.Tire.Brand,
				Price:      item.Tire.Price,
			}
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}

type quoteLineResponse struct {
	TireID    int64           `json:"tire_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type quoteResponse struct {
	Lines          []quoteLineResponse `json:"lines"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	Total          decimal.Decimal     `json:"total"`
}

func toQuoteResponse(q *app.Quote) quoteResponse {
	resp := quoteResponse{
		Lines:          make([]quoteLineResponse, 0, len(q.Lines)),
		Subtotal:       q.Subtotal,
		DiscountAmount: q.DiscountAmount,
		Total:          q.Total,
	}
	for _, line := range q.Lines {
		resp.Lines = append(resp.Lines, quoteLineResponse{
			TireID:    line.TireID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	return resp
}
