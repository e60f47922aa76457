package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// uncategorizedLabel is the summary bucket for transactions whose category
// could not be resolved.
const uncategorizedLabel = "Sem Categoria"

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
	}
}

// ListTransactions retrieves all transactions owned by the user, each with
// its category preloaded, most recent first. Ties on date keep creation order.
func (s *transactionService) ListTransactions(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// CreateTransaction creates a new transaction for a user. The category must
// exist and belong to the same user.
func (s *transactionService) CreateTransaction(
	userID, categoryID uint,
	transactionType models.TransactionType,
	amount float64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	// Ownership check: the category must belong to the caller.
	if _, err := s.categoryService.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction. The lookup is scoped by user, so a
// transaction owned by someone else reports not-found and is left intact.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Summarize computes income and expense totals, the balance, and per-category
// totals over all of the user's transactions. Per-category accumulation sums
// signed amounts across both kinds, keyed by category id; transactions whose
// category cannot be resolved fall into the "Sem Categoria" bucket.
func (s *transactionService) Summarize(userID uint) (*Summary, error) {
	transactions, err := s.ListTransactions(userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Categorias: []CategoryTotal{}}

	totals := make(map[uint]float64)
	names := make(map[uint]string)

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			summary.TotalReceitas += t.Amount
		case models.TransactionTypeExpense:
			summary.TotalDespesas += t.Amount
		}

		// Key 0 collects transactions with a dangling category reference.
		key := uint(0)
		name := uncategorizedLabel
		if t.Category != nil {
			key = t.Category.ID
			name = t.Category.Name
		}
		totals[key] += t.Amount
		names[key] = name
	}

	summary.Saldo = summary.TotalReceitas - summary.TotalDespesas

	for key, total := range totals {
		summary.Categorias = append(summary.Categorias, CategoryTotal{
			Name:  names[key],
			Total: total,
		})
	}

	return summary, nil
}
