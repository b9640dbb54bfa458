package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/storefront-admin/internal/catalog"
	"github.com/imrishuroy/storefront-admin/internal/store"
	"github.com/imrishuroy/storefront-admin/internal/validation"
)

// RegisterProductRoutes registers the product CRUD surface.
func RegisterProductRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	products := catalog.NewStore(cfg.Client, cfg.Cache)

	r.GET("/products", func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	})

	r.GET("/products/:id", func(c *gin.Context) {
		p, err := products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			storeError(c, err)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.POST("/products", func(c *gin.Context) {
		var req validation.CreateProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400; no store call was made
			return
		}
		price, _ := validation.ParsePrice(req.Price)

		p, err := products.Create(c.Request.Context(), catalog.CreateProductInput{
			Title:       req.Title,
			Price:       price,
			Description: req.Description,
		})
		if err != nil {
			storeError(c, err)
			return
		}

		c.Header("Location", "/products/"+p.ID)
		c.JSON(http.StatusCreated, p)
	})

	r.PUT("/products/:id", func(c *gin.Context) {
		var req validation.UpdateProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		in := catalog.UpdateProductInput{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
		}
		if req.Price != nil {
			price, _ := validation.ParsePrice(*req.Price)
			in.Price = &price
		}

		p, err := products.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
				return
			}
			storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	// image re-upload: binary body in, patched product out. The upload and
	// the patch are two store calls; only the patch is atomic.
	r.POST("/products/:id/image", func(c *gin.Context) {
		p, err := products.Update(c.Request.Context(), c.Param("id"), catalog.UpdateProductInput{
			ImageData: c.Request.Body,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
				return
			}
			storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.DELETE("/products/:id", func(c *gin.Context) {
		err := products.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
				return
			}
			storeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
