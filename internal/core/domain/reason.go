package domain

// ReasonName is the fixed classification vocabulary for return line items.
type ReasonName string

const (
	ReasonShortDated    ReasonName = "Short Dated"
	ReasonOutdated      ReasonName = "Outdated"
	ReasonFutureDated   ReasonName = "Future Dated"
	ReasonReturnable    ReasonName = "Returnable"
	ReasonNonReturnable ReasonName = "Non-Returnable"
)

// Reason is a named classification label with a human-readable description.
// Seeded once at startup; deletion is blocked while any line item references it.
type Reason struct {
	ReasonID    string     `json:"reasonID"` // Primary Key (UUID)
	Name        ReasonName `json:"name"`     // Unique
	Description string     `json:"description"`
	AuditFields
}

// DefaultReasons returns the seed vocabulary in display order.
func DefaultReasons() []Reason {
	return []Reason{
		{Name: ReasonShortDated, Description: "Product expires within 6 months"},
		{Name: ReasonOutdated, Description: "Product has already expired"},
		{Name: ReasonFutureDated, Description: "Product expires more than 12 months out"},
		{Name: ReasonReturnable, Description: "Product is within the returnable window"},
		{Name: ReasonNonReturnable, Description: "Product is restricted by manufacturer policy"},
	}
}
