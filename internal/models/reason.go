package models

// Reason represents a row in the classification reason vocabulary.
type Reason struct {
	ReasonID    string `db:"reason_id"`
	Name        string `db:"name"` // Unique
	Description string `db:"description"`
	AuditFields
}
