package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/storefront-admin/internal/display"
	"github.com/imrishuroy/storefront-admin/internal/orders"
	"github.com/imrishuroy/storefront-admin/internal/store"
	"github.com/imrishuroy/storefront-admin/internal/validation"
)

// statusBadge pairs a status value with its display class.
type statusBadge struct {
	Value string `json:"value"`
	Color string `json:"color"`
}

// orderRow is one line of the dashboard's recent orders table.
type orderRow struct {
	ID       string        `json:"id"`
	Customer string        `json:"customer"`
	User     string        `json:"user"`
	Status   []statusBadge `json:"status"`
	Total    *float64      `json:"total,omitempty"`
	Date     string        `json:"date,omitempty"`
}

func buildOrderRow(o orders.Order) orderRow {
	badges := make([]statusBadge, 0, len(o.Status))
	for _, s := range o.Status {
		badges = append(badges, statusBadge{Value: s, Color: display.StatusColorClass(s)})
	}
	row := orderRow{
		ID:       o.ID,
		Customer: o.Details.FirstName,
		User:     o.User,
		Status:   badges,
		Total:    o.Total,
	}
	if !o.CreatedAt.IsZero() {
		row.Date = o.CreatedAt.Format(time.RFC3339)
	}
	return row
}

// RegisterOrdersRoutes registers the order list and the status patch.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	ordersStore := orders.NewStore(cfg.Client, cfg.Cache)

	r.GET("/orders", func(c *gin.Context) {
		list, err := ordersStore.ListRecent(c.Request.Context())
		if err != nil {
			storeError(c, err)
			return
		}
		rows := make([]orderRow, 0, len(list))
		for _, o := range list {
			rows = append(rows, buildOrderRow(o))
		}
		c.JSON(http.StatusOK, gin.H{"orders": rows})
	})

	r.PATCH("/orders/:id/status", func(c *gin.Context) {
		var req validation.UpdateOrderStatusRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		o, err := ordersStore.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
				return
			}
			storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, buildOrderRow(*o))
	})
}
