package models

// CategoryType represents the kind of transactions a category classifies.
// Values keep the application's Portuguese wire vocabulary.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "receita"
	CategoryTypeExpense CategoryType = "despesa"
	CategoryTypeBoth    CategoryType = "ambos"
)

// Category represents a transaction category owned by a user
type Category struct {
	Base
	UserID uint         `gorm:"not null;index" json:"user_id"`
	Name   string       `gorm:"not null" json:"name"`
	Type   CategoryType `gorm:"not null" json:"type"`
	Color  string       `json:"color"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}

// DefaultCategories is the fixed reference set seeded for every new user.
// Colors match the chart palette used by the client store.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Alimentação", Type: CategoryTypeExpense, Color: "#FF6384"},
		{Name: "Transporte", Type: CategoryTypeExpense, Color: "#36A2EB"},
		{Name: "Moradia", Type: CategoryTypeExpense, Color: "#FFCE56"},
		{Name: "Salário", Type: CategoryTypeIncome, Color: "#4BC0C0"},
		{Name: "Investimentos", Type: CategoryTypeIncome, Color: "#9966FF"},
		{Name: "Outros", Type: CategoryTypeBoth, Color: "#FF9F40"},
	}
}
