package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alpenhof/shipdesk/internal/domain"
	"github.com/alpenhof/shipdesk/internal/shipment"
)

// HandleGetShipment handles GET /api/shipment
func HandleGetShipment(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// HandleSelectProduct handles PUT /api/shipment/product. A JSON null body
// clears the candidate.
func HandleSelectProduct(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product *domain.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store.SetSelectedProduct(product)
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// SetPriceRequest carries a manual unit price edit. A null price clears it.
type SetPriceRequest struct {
	Price *float64 `json:"price"`
}

// HandleSetPrice handles PUT /api/shipment/price
func HandleSetPrice(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetPriceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store.SetEditablePrice(req.Price)
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// HandleIncrementVolume handles POST /api/shipment/volume/increment
func HandleIncrementVolume(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.IncrementVolume()
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// HandleDecrementVolume handles POST /api/shipment/volume/decrement
func HandleDecrementVolume(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.DecrementVolume()
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// HandleAddProduct handles POST /api/shipment/products. Commits the candidate
// as a line item; a rejected commit returns 422 with the failure result.
func HandleAddProduct(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := store.AddProduct()
		if !result.Success {
			c.JSON(http.StatusUnprocessableEntity, result)
			return
		}
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// HandleRemoveProduct handles DELETE /api/shipment/products/:index
func HandleRemoveProduct(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line item index"})
			return
		}

		store.RemoveProduct(idx)
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// HandleSelectClient handles PUT /api/shipment/client. A JSON null body
// clears the client.
func HandleSelectClient(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client *domain.Client
		if err := c.ShouldBindJSON(&client); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store.SetSelectedClient(client)
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// UpdateInvoiceRequest carries a partial invoice edit.
type UpdateInvoiceRequest struct {
	Status  *domain.InvoiceStatus `json:"status"`
	Notes   *string               `json:"notes"`
	TaxRate *float64              `json:"tax_rate"`
}

// HandleUpdateInvoice handles PUT /api/shipment/invoice
func HandleUpdateInvoice(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateInvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if req.Status != nil {
			if result := store.SetInvoiceStatus(*req.Status); !result.Success {
				c.JSON(http.StatusUnprocessableEntity, result)
				return
			}
		}
		if req.Notes != nil {
			store.SetInvoiceNotes(*req.Notes)
		}
		if req.TaxRate != nil {
			store.SetTaxRate(*req.TaxRate)
		}

		c.JSON(http.StatusOK, store.Snapshot())
	}
}

// HandleInvoiceStatusOptions handles GET /api/shipment/invoice/status-options
func HandleInvoiceStatusOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, domain.InvoiceStatusOptions())
	}
}

// HandleSaveShipment handles POST /api/shipment/save. The draft is left
// untouched on both outcomes so a failed save can be retried.
func HandleSaveShipment(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := store.SaveShipment(c.Request.Context())
		if !result.Success {
			c.JSON(http.StatusBadGateway, result)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// HandleNewShipment handles POST /api/shipment/new. Resets the draft and
// erases every persisted field.
func HandleNewShipment(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.NewShipment()
		c.JSON(http.StatusOK, store.Snapshot())
	}
}
