package validation

import (
	"strconv"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation
// registered for the product mutation payloads.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// prices reach the store as numbers; reject anything that does not
	// parse as a non-negative decimal before a mutation is attempted.
	v.RegisterStructValidation(createProductStructValidation, CreateProductRequest{})
	v.RegisterStructValidation(updateProductStructValidation, UpdateProductRequest{})

	return v
}

// ParsePrice parses a price form value into the number stored on the
// document. Returns false when the value is not a non-negative decimal.
func ParsePrice(raw string) (float64, bool) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price < 0 {
		return 0, false
	}
	return price, true
}

func createProductStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateProductRequest)
	if req.Price == "" {
		return // required tag reports the missing field
	}
	if _, ok := ParsePrice(req.Price); !ok {
		sl.ReportError(req.Price, "price", "Price", "price_non_negative_number", "")
	}
}

func updateProductStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(UpdateProductRequest)
	if req.Price == nil {
		return
	}
	if _, ok := ParsePrice(*req.Price); !ok {
		sl.ReportError(*req.Price, "price", "Price", "price_non_negative_number", "")
	}
}
