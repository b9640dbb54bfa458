package validation

// CreateProductRequest is the payload for POST /products. Price arrives as
// the raw form string; it must parse as a non-negative number before any
// store call is made.
type CreateProductRequest struct {
	Title       string `json:"title" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description,omitempty"`
}

// UpdateProductRequest is the payload for PUT /products/:id. All fields are
// optional; absent fields are left untouched by the patch.
type UpdateProductRequest struct {
	Title       *string `json:"title,omitempty"`
	Price       *string `json:"price,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive out_of_stock"`
}

// UpdateOrderStatusRequest is the payload for PATCH /orders/:id/status.
// Status is free-form; the dashboard displays whatever string is present.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
