package alerts

import (
	"fmt"
	"strings"

	"backoffice/internal/core/types"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/supplier"
)

// SuggestedOrder is the quantity that brings the item to twice its reorder
// level, never less than the reorder level itself.
func SuggestedOrder(item *inventory.Item) types.Quantity {
	target := item.ReorderLevel.Add(item.ReorderLevel).Sub(item.Quantity)
	if target < item.ReorderLevel {
		return item.ReorderLevel
	}
	return target
}

// ComposeMessage renders the restock request sent to a supplier.
func ComposeMessage(s *supplier.Supplier, item *inventory.Item) string {
	var b strings.Builder

	greeting := s.ContactPerson
	if greeting == "" {
		greeting = s.Name
	}
	fmt.Fprintf(&b, "Hello %s,\n\n", greeting)

	if item.Status() == inventory.StatusOut {
		fmt.Fprintf(&b, "We have run out of %s", item.Name)
	} else {
		fmt.Fprintf(&b, "We are running low on %s: %s %s left (reorder level %s %s)",
			item.Name, item.Quantity.Display(), item.Unit, item.ReorderLevel.Display(), item.Unit)
	}
	if item.Branch != "" {
		fmt.Fprintf(&b, " at our %s branch", item.Branch)
	}
	b.WriteString(".\n")

	fmt.Fprintf(&b, "Please arrange a delivery of %s %s at your earliest convenience.\n\n",
		SuggestedOrder(item).Display(), item.Unit)
	b.WriteString("Thank you.")
	return b.String()
}
