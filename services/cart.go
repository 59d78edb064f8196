package services

import (
	"math"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultSize = "M"

// cartLine is one validated cart entry. The wire shape is a flat map of
// "<productId>": quantity entries with optional "<productId>_size": "L"
// entries alongside, submitted wholesale at checkout.
type cartLine struct {
	ProductID primitive.ObjectID
	Quantity  int
	Size      string
}

const sizeSuffix = "_size"

// parseCart validates the raw items map eagerly, before any side effect.
// A size entry without a quantity entry still selects the product, with
// the quantity defaulting to 1.
func parseCart(items map[string]any) ([]cartLine, error) {
	if len(items) == 0 {
		return nil, validationError("Invalid items data")
	}

	quantities := make(map[string]int)
	sizes := make(map[string]string)
	var order []string

	seen := func(id string) {
		if _, ok := quantities[id]; ok {
			return
		}
		if _, ok := sizes[id]; ok {
			return
		}
		order = append(order, id)
	}

	for key, value := range items {
		if id, ok := strings.CutSuffix(key, sizeSuffix); ok {
			size, ok := value.(string)
			if !ok || size == "" {
				return nil, validationError("Invalid size for product %s", id)
			}
			seen(id)
			sizes[id] = size
			continue
		}

		qty, ok := asQuantity(value)
		if !ok {
			return nil, validationError("Invalid quantity for product %s", key)
		}
		seen(key)
		quantities[key] = qty
	}

	// Map iteration order is random; sort so line order is stable.
	sort.Strings(order)

	lines := make([]cartLine, 0, len(order))
	for _, id := range order {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, validationError("Invalid product id: %s", id)
		}
		qty, ok := quantities[id]
		if !ok {
			qty = 1
		}
		size, ok := sizes[id]
		if !ok {
			size = defaultSize
		}
		lines = append(lines, cartLine{ProductID: oid, Quantity: qty, Size: size})
	}
	return lines, nil
}

// maxQuantity bounds a single line item. Anything larger is a malformed
// request, and float64 values beyond int range would overflow int(v).
const maxQuantity = math.MaxInt32

// asQuantity accepts the numeric types encoding/json produces and
// rejects zero, negative, fractional, and out-of-range values.
func asQuantity(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v < 1 || v > maxQuantity || v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case int:
		if v < 1 || v > maxQuantity {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}
