package domain

// Pure cart operations. None of them mutate the input cart; persistence is
// the caller's concern.

// Add merges item into the cart. An existing entry with the same
// (product, variant) key gets its quantity increased, so the cart never
// holds two entries under one key.
func Add(cart Cart, item LineItem) Cart {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	items := make([]LineItem, len(cart.Items))
	copy(items, cart.Items)
	for i, existing := range items {
		if existing.sameKey(item.ProductID, item.Variant) {
			items[i].Quantity += item.Quantity
			cart.Items = items
			return cart
		}
	}
	cart.Items = append(items, item)
	return cart
}

// SetQuantity replaces the quantity of the matching entry. Callers clamp
// quantity to >= 1 before calling; an absent key is a no-op.
func SetQuantity(cart Cart, productID, variant string, quantity int) Cart {
	items := make([]LineItem, len(cart.Items))
	copy(items, cart.Items)
	for i, existing := range items {
		if existing.sameKey(productID, variant) {
			items[i].Quantity = quantity
			break
		}
	}
	cart.Items = items
	return cart
}

// Remove excludes the matching entry; an absent key is a no-op.
func Remove(cart Cart, productID, variant string) Cart {
	items := make([]LineItem, 0, len(cart.Items))
	for _, existing := range cart.Items {
		if existing.sameKey(productID, variant) {
			continue
		}
		items = append(items, existing)
	}
	cart.Items = items
	return cart
}

// Total is the sum of unit price times quantity over all entries,
// 0 for an empty cart.
func Total(cart Cart) int {
	total := 0
	for _, item := range cart.Items {
		total += item.Subtotal()
	}
	return total
}
