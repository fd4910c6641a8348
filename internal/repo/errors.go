package repo

import "errors"

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
	ErrInvalidQuantityChange = errors.New("quantity cannot be negative")
	ErrInvalidMovementType   = errors.New("invalid movement type")
)

func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// page slices items by offset and limit. A nil or non-positive limit means no limit.
func page[T any](items []T, offset, limit *int) []T {
	if offset != nil && *offset > len(items) {
		return []T{}
	}

	start := 0
	if offset != nil {
		start = clamp(*offset, 0, len(items))
	}

	end := len(items)
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, len(items))
	}

	return items[start:end]
}
