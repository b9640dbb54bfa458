// Package display holds the view-model adapters: pure, synchronous,
// deterministic transforms from raw documents to the shapes the dashboard
// renders. Nothing here performs I/O or fails.
package display

import (
	"strings"

	"github.com/imrishuroy/storefront-admin/internal/catalog"
	"github.com/imrishuroy/storefront-admin/internal/orders"
)

// Status display classes, as rendered by the dashboard.
const (
	ColorGreen  = "bg-green-100 text-green-800"
	ColorYellow = "bg-yellow-100 text-yellow-800"
	ColorBlue   = "bg-blue-100 text-blue-800"
	ColorGray   = "bg-gray-100 text-gray-800"
)

// StatusColorClass maps a status string to its display class. Total and
// case-insensitive; an absent or unknown status renders gray.
func StatusColorClass(status string) string {
	switch strings.ToLower(status) {
	case orders.StatusCompleted:
		return ColorGreen
	case orders.StatusProcessing:
		return ColorYellow
	case orders.StatusShipped:
		return ColorBlue
	default:
		return ColorGray
	}
}

// CustomerOrderCount counts the non-null entries of the order's product list.
// Product deletion leaves null slots behind, so the raw length overcounts.
func CustomerOrderCount(o orders.Order) int {
	n := 0
	for _, p := range o.Products {
		if p != nil {
			n++
		}
	}
	return n
}

// OrderedProducts returns the order's product list with null slots removed.
func OrderedProducts(o orders.Order) []orders.OrderProduct {
	out := make([]orders.OrderProduct, 0, len(o.Products))
	for _, p := range o.Products {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// ProductDisplayImage resolves a product's image to a renderable URL.
// The second return is false when there is no image to show.
func ProductDisplayImage(p catalog.Product) (string, bool) {
	if p.Image == nil || p.Image.URL == "" {
		return "", false
	}
	return p.Image.URL, true
}

// RevenueTotal sums order totals, treating an absent total as 0.
func RevenueTotal(os []orders.Order) float64 {
	var sum float64
	for _, o := range os {
		if o.Total != nil {
			sum += *o.Total
		}
	}
	return sum
}

// DistinctCustomers counts the distinct user values across orders. The
// dashboard has no customer entity; this is its "customer count".
func DistinctCustomers(os []orders.Order) int {
	seen := map[string]struct{}{}
	for _, o := range os {
		seen[o.User] = struct{}{}
	}
	return len(seen)
}

// Summary is the dashboard's stat-card block.
type Summary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
	ProductCount  int     `json:"product_count"`
	CustomerCount int     `json:"customer_count"`
}

// Summarize derives the dashboard summary from one products read and one
// orders read.
func Summarize(products []catalog.Product, os []orders.Order) Summary {
	return Summary{
		TotalRevenue:  RevenueTotal(os),
		OrderCount:    len(os),
		ProductCount:  len(products),
		CustomerCount: DistinctCustomers(os),
	}
}
