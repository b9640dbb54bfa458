package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/storefront-admin/internal/catalog"
	"github.com/imrishuroy/storefront-admin/internal/display"
	"github.com/imrishuroy/storefront-admin/internal/orders"
)

// productCard is one card of the dashboard's product grid.
type productCard struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// RegisterDashboardRoutes registers the summary view. Products and orders
// are two independent reads issued concurrently; there is no ordering
// guarantee between them and no cross-document consistency to preserve.
func RegisterDashboardRoutes(r *gin.Engine, cfg HandlerConfig) {
	productsStore := catalog.NewStore(cfg.Client, cfg.Cache)
	ordersStore := orders.NewStore(cfg.Client, cfg.Cache)

	r.GET("/dashboard", func(c *gin.Context) {
		ctx := c.Request.Context()

		type productsResult struct {
			products []catalog.Product
			err      error
		}
		type ordersResult struct {
			orders []orders.Order
			err    error
		}
		pCh := make(chan productsResult, 1)
		oCh := make(chan ordersResult, 1)

		go func() {
			p, err := productsStore.List(ctx)
			pCh <- productsResult{products: p, err: err}
		}()
		go func() {
			o, err := ordersStore.ListRecent(ctx)
			oCh <- ordersResult{orders: o, err: err}
		}()

		pr := <-pCh
		or := <-oCh
		if pr.err != nil {
			storeError(c, pr.err)
			return
		}
		if or.err != nil {
			storeError(c, or.err)
			return
		}

		cards := make([]productCard, 0, len(pr.products))
		for _, p := range pr.products {
			card := productCard{
				ID:          p.ID,
				Title:       p.Title,
				Price:       p.Price,
				Description: p.Description,
			}
			if url, ok := display.ProductDisplayImage(p); ok {
				card.ImageURL = url
			}
			cards = append(cards, card)
		}

		rows := make([]orderRow, 0, len(or.orders))
		for _, o := range or.orders {
			rows = append(rows, buildOrderRow(o))
		}

		c.JSON(http.StatusOK, gin.H{
			"summary":       display.Summarize(pr.products, or.orders),
			"recent_orders": rows,
			"products":      cards,
		})
	})
}
