package normalize

import (
	"math"

	"github.com/spf13/cast"
)

// quantityKeys are the spellings a line quantity has been seen under.
var quantityKeys = []string{"Qty", "qty", "UomQtyOrdered", "uomQtyOrdered"}

// LineQuantity sums the quantities of a LineItems value.
// Items that are not objects, or whose quantity does not coerce to a
// number, contribute zero. The total is truncated toward zero.
func LineQuantity(lineItems any) int {
	items, ok := lineItems.([]any)
	if !ok {
		return 0
	}

	var total float64
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		v, ok := First(item, quantityKeys...)
		if !ok {
			continue
		}
		qty, err := cast.ToFloat64E(v)
		if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) {
			continue
		}
		total += qty
	}

	if total <= 0 {
		return 0
	}
	return int(math.Trunc(total))
}
