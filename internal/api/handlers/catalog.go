package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alpenhof/shipdesk/internal/shipment"
)

// HandleListProducts handles GET /api/products. Refreshes the catalog from
// the backend; on a failed fetch the previously loaded list is served.
func HandleListProducts(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.FetchProducts(c.Request.Context())
		c.JSON(http.StatusOK, store.Snapshot().AllProducts)
	}
}

// HandleSearchClients handles GET /api/clients?query=
func HandleSearchClients(store *shipment.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("query")
		store.SearchClients(c.Request.Context(), query)
		c.JSON(http.StatusOK, store.Snapshot().AllClients)
	}
}
