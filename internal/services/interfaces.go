package services

import (
	"time"

	"fintrack/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	SeedDefaults(userID uint) error
	GetUserCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
}

// CategoryTotal is one per-category entry of a summary. The category's
// display name is carried for presentation; accumulation is keyed by the
// category's id so categories sharing a name never collide.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Summary is the aggregate view of a user's transactions.
type Summary struct {
	Saldo         float64         `json:"saldo"`
	TotalReceitas float64         `json:"totalReceitas"`
	TotalDespesas float64         `json:"totalDespesas"`
	Categorias    []CategoryTotal `json:"categorias"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(userID uint) ([]models.Transaction, error)
	CreateTransaction(userID, categoryID uint, transactionType models.TransactionType, amount float64, description string, date time.Time) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	Summarize(userID uint) (*Summary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
}
