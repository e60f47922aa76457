package services

import (
	"math"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		tx, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 42.50, "Groceries", time.Now())
		testutil.AssertNoError(t, err)

		if tx.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}
		if tx.Amount != 42.50 {
			t.Errorf("expected amount 42.50, got %v", tx.Amount)
		}
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 0, "Zero", time.Now())
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		_, err = svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, -5, "Negative", time.Now())
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("missing_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 10, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 10, "No date", time.Time{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("foreign_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, owner.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(intruder.ID, category.ID, models.TransactionTypeExpense, 10, "Not mine", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no transactions persisted, got %d", count)
		}
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("ordered_most_recent_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		old := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
		recent := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)

		first, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 10, "Old", old)
		testutil.AssertNoError(t, err)
		second, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 20, "Recent", recent)
		testutil.AssertNoError(t, err)

		transactions, err := svc.ListTransactions(user.ID)
		testutil.AssertNoError(t, err)

		if len(transactions) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(transactions))
		}
		if transactions[0].ID != second.ID || transactions[1].ID != first.ID {
			t.Errorf("expected order [%d %d], got [%d %d]", second.ID, first.ID, transactions[0].ID, transactions[1].ID)
		}
	})

	t.Run("date_ties_keep_creation_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		date := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
		first, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 10, "First", date)
		testutil.AssertNoError(t, err)
		second, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 20, "Second", date)
		testutil.AssertNoError(t, err)

		transactions, err := svc.ListTransactions(user.ID)
		testutil.AssertNoError(t, err)

		if transactions[0].ID != first.ID || transactions[1].ID != second.ID {
			t.Errorf("expected creation order [%d %d], got [%d %d]", first.ID, second.ID, transactions[0].ID, transactions[1].ID)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat1 := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeExpense)
		cat2 := testutil.CreateTestCategory(t, db, user2.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user1.ID, cat1.ID, models.TransactionTypeExpense, 10)
		testutil.CreateTestTransaction(t, db, user2.ID, cat2.ID, models.TransactionTypeExpense, 20)

		transactions, err := svc.ListTransactions(user1.ID)
		testutil.AssertNoError(t, err)
		if len(transactions) != 1 {
			t.Fatalf("expected 1 transaction for user1, got %d", len(transactions))
		}
		if transactions[0].Amount != 10 {
			t.Errorf("expected user1's transaction, got amount %v", transactions[0].Amount)
		}
	})

	t.Run("preloads_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 10)

		transactions, err := svc.ListTransactions(user.ID)
		testutil.AssertNoError(t, err)
		if transactions[0].Category == nil {
			t.Fatal("expected category to be preloaded")
		}
		if transactions[0].Category.Name != category.Name {
			t.Errorf("expected category %s, got %s", category.Name, transactions[0].Category.Name)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("deletes_own_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 10)

		testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, tx.ID))

		transactions, err := svc.ListTransactions(user.ID)
		testutil.AssertNoError(t, err)
		if len(transactions) != 0 {
			t.Errorf("expected no transactions after delete, got %d", len(transactions))
		}
	})

	t.Run("cross_user_delete_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, owner.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, category.ID, models.TransactionTypeExpense, 10)

		err := svc.DeleteTransaction(intruder.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		transactions, listErr := svc.ListTransactions(owner.ID)
		testutil.AssertNoError(t, listErr)
		if len(transactions) != 1 {
			t.Errorf("expected owner's transaction intact, got %d transactions", len(transactions))
		}
	})

	t.Run("absent_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteTransaction(user.ID, 99999)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.Summarize(user.ID)
		testutil.AssertNoError(t, err)

		if summary.Saldo != 0 || summary.TotalReceitas != 0 || summary.TotalDespesas != 0 {
			t.Errorf("expected all-zero summary, got %+v", summary)
		}
		if summary.Categorias == nil || len(summary.Categorias) != 0 {
			t.Errorf("expected empty categorias slice, got %v", summary.Categorias)
		}
	})

	t.Run("balance_identity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		expense := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, income.ID, models.TransactionTypeIncome, 3000)
		testutil.CreateTestTransaction(t, db, user.ID, expense.ID, models.TransactionTypeExpense, 1200)
		testutil.CreateTestTransaction(t, db, user.ID, expense.ID, models.TransactionTypeExpense, 300)

		summary, err := svc.Summarize(user.ID)
		testutil.AssertNoError(t, err)

		if summary.TotalReceitas != 3000 {
			t.Errorf("expected totalReceitas 3000, got %v", summary.TotalReceitas)
		}
		if summary.TotalDespesas != 1500 {
			t.Errorf("expected totalDespesas 1500, got %v", summary.TotalDespesas)
		}
		if summary.Saldo != summary.TotalReceitas-summary.TotalDespesas {
			t.Errorf("balance identity violated: %v != %v - %v", summary.Saldo, summary.TotalReceitas, summary.TotalDespesas)
		}
	})

	t.Run("categorias_sum_to_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		expense := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, income.ID, models.TransactionTypeIncome, 100.50)
		testutil.CreateTestTransaction(t, db, user.ID, expense.ID, models.TransactionTypeExpense, 40.25)
		testutil.CreateTestTransaction(t, db, user.ID, expense.ID, models.TransactionTypeExpense, 9.75)

		summary, err := svc.Summarize(user.ID)
		testutil.AssertNoError(t, err)

		var sum float64
		for _, c := range summary.Categorias {
			sum += c.Total
		}
		raw := summary.TotalReceitas + summary.TotalDespesas
		if math.Abs(sum-raw) > 1e-9 {
			t.Errorf("expected categorias to sum to %v, got %v", raw, sum)
		}
	})

	t.Run("same_name_categories_kept_apart", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		cat1 := &models.Category{UserID: user.ID, Name: "Outros", Type: models.CategoryTypeBoth, Color: "#FF9F40"}
		cat2 := &models.Category{UserID: user.ID, Name: "Outros", Type: models.CategoryTypeBoth, Color: "#FF9F40"}
		testutil.AssertNoError(t, db.Create(cat1).Error)
		testutil.AssertNoError(t, db.Create(cat2).Error)

		testutil.CreateTestTransaction(t, db, user.ID, cat1.ID, models.TransactionTypeExpense, 10)
		testutil.CreateTestTransaction(t, db, user.ID, cat2.ID, models.TransactionTypeExpense, 20)

		summary, err := svc.Summarize(user.ID)
		testutil.AssertNoError(t, err)

		if len(summary.Categorias) != 2 {
			t.Fatalf("expected 2 category buckets, got %d", len(summary.Categorias))
		}
	})

	t.Run("dangling_category_reported_as_uncategorized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 15)

		testutil.AssertNoError(t, db.Delete(category).Error)

		summary, err := svc.Summarize(user.ID)
		testutil.AssertNoError(t, err)

		if len(summary.Categorias) != 1 {
			t.Fatalf("expected 1 category bucket, got %d", len(summary.Categorias))
		}
		if summary.Categorias[0].Name != "Sem Categoria" {
			t.Errorf("expected Sem Categoria bucket, got %s", summary.Categorias[0].Name)
		}
		if summary.Categorias[0].Total != 15 {
			t.Errorf("expected bucket total 15, got %v", summary.Categorias[0].Total)
		}
	})
}
