package domain

// Category is a user-defined transaction category.
type Category struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Type       TransactionType `json:"type"`
	Color      string          `json:"color"`
	AuditFields
}
