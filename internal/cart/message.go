package cart

import (
	"fmt"
	"strings"
)

// OrderMessage renders the deterministic order summary sent over
// WhatsApp. It reads the lines without mutating them; an empty cart
// still yields the greeting, a zero total, and the closing.
func OrderMessage(state *State) string {
	var b strings.Builder
	b.WriteString("Bonjour, je voudrais commander les produits suivants :\n\n")

	for i := range state.Lines {
		line := state.Lines[i]
		fmt.Fprintf(&b, "%d. %s (%d x %s DNT) = %s DNT\n",
			i+1,
			line.Name,
			line.Quantity,
			line.Price.String(),
			line.Subtotal().StringFixed(2),
		)
	}

	totals := state.Totals()
	fmt.Fprintf(&b, "\nTotal: %s DNT", totals.Subtotal.StringFixed(2))
	b.WriteString("\n\nMerci !")
	return b.String()
}
