package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/storefront-admin/internal/display"
	"github.com/imrishuroy/storefront-admin/internal/orders"
)

// customerRow is one line of the customer list view.
type customerRow struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	TotalOrders int    `json:"total_orders"`
}

// RegisterCustomerRoutes registers the customer list and detail views.
//
// There is no customer entity in the store: a "customer" here is the order
// document that names them. The detail route fetches an order by id.
func RegisterCustomerRoutes(r *gin.Engine, cfg HandlerConfig) {
	ordersStore := orders.NewStore(cfg.Client, cfg.Cache)

	r.GET("/customers", func(c *gin.Context) {
		list, err := ordersStore.List(c.Request.Context())
		if err != nil {
			storeError(c, err)
			return
		}

		rows := make([]customerRow, 0, len(list))
		for _, o := range list {
			rows = append(rows, customerRow{
				ID:          o.ID,
				Slug:        o.Slug,
				Name:        o.Details.FirstName + " " + o.Details.LastName,
				Email:       o.Details.Email,
				TotalOrders: display.CustomerOrderCount(o),
			})
		}
		c.JSON(http.StatusOK, gin.H{"customers": rows})
	})

	r.GET("/customers/:id", func(c *gin.Context) {
		o, err := ordersStore.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			storeError(c, err)
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer_not_found"})
			return
		}

		status := o.Status.Primary()
		c.JSON(http.StatusOK, gin.H{
			"id":           o.ID,
			"details":      o.Details,
			"user":         o.User,
			"status":       status,
			"status_color": display.StatusColorClass(status),
			"total_orders": display.CustomerOrderCount(*o),
			"products":     display.OrderedProducts(*o),
		})
	})
}
