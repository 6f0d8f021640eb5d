package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/igorvsx/WalletControlAPI/internal/metrics"
	"github.com/igorvsx/WalletControlAPI/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrIncomeImmutable is returned when an update tries to flip the
	// income flag. The balance correction math assumes the sign of a
	// transaction never changes after creation, so a flip is rejected
	// instead of silently corrupting the balance.
	ErrIncomeImmutable = errors.New("income flag cannot change on update")
)

// Service keeps account balances consistent with transaction history.
// Every mutation runs inside one database transaction so the balance
// write and the transaction row write commit or roll back together.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// NewTransaction carries the fields of a transaction to be recorded.
type NewTransaction struct {
	Name        string
	Description string
	Amount      decimal.Decimal
	Date        string // YYYY-MM-DD
	Income      bool
	AccountID   uint
	CategoryID  uint
}

// TransactionUpdate names exactly the mutable fields of a persisted
// transaction. AccountID is absent on purpose: a transaction stays on
// its account for life. Income must equal the stored flag.
type TransactionUpdate struct {
	Name        string
	Description string
	Amount      decimal.Decimal
	Date        string
	Income      bool
	CategoryID  uint
}

// Create records a transaction and applies its signed amount to the
// owning account's balance.
func (s *Service) Create(ctx context.Context, in NewTransaction) (*models.Transaction, error) {
	row := models.Transaction{
		Name:        in.Name,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
		Income:      in.Income,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, in.AccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("load account: %w", err)
		}

		balance := account.Balance.Sub(in.Amount)
		if in.Income {
			balance = account.Balance.Add(in.Amount)
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", account.ID).
			Update("balance", balance).Error; err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerMutations.WithLabelValues("create").Inc()
	return &row, nil
}

// Update overwrites the mutable fields of a transaction and corrects the
// account balance by the amount delta.
func (s *Service) Update(ctx context.Context, id uint, in TransactionUpdate) (*models.Transaction, error) {
	var row models.Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return fmt.Errorf("load transaction: %w", err)
		}
		if in.Income != row.Income {
			return ErrIncomeImmutable
		}

		var account models.Account
		if err := tx.First(&account, row.AccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("load account: %w", err)
		}

		// undo the old amount, apply the new one
		diff := in.Amount.Sub(row.Amount)
		balance := account.Balance.Sub(diff)
		if row.Income {
			balance = account.Balance.Add(diff)
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", account.ID).
			Update("balance", balance).Error; err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		row.Name = in.Name
		row.Description = in.Description
		row.Amount = in.Amount
		row.Date = in.Date
		row.CategoryID = in.CategoryID
		if err := tx.Omit(clause.Associations).Save(&row).Error; err != nil {
			return fmt.Errorf("save transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerMutations.WithLabelValues("update").Inc()
	return &row, nil
}

// Delete removes a transaction and reverses its effect on the account
// balance.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Transaction
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return fmt.Errorf("load transaction: %w", err)
		}

		var account models.Account
		if err := tx.First(&account, row.AccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("load account: %w", err)
		}

		balance := account.Balance.Add(row.Amount)
		if row.Income {
			balance = account.Balance.Sub(row.Amount)
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", account.ID).
			Update("balance", balance).Error; err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		if err := tx.Delete(&models.Transaction{}, row.ID).Error; err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.LedgerMutations.WithLabelValues("delete").Inc()
	return nil
}

// SumByCategory sums transaction amounts per category name for one user
// and one direction (income or expense), limited by the bucket window.
// An unrecognized bucket means no date filter; an empty result is an
// empty map, not an error.
func (s *Service) SumByCategory(ctx context.Context, userID uint, income bool, bucket string) (map[string]decimal.Decimal, error) {
	// the label set stays bounded: arbitrary bucket strings collapse to "all"
	bucketLabel := "all"
	switch bucket {
	case BucketDay, BucketWeek, BucketMonth, BucketYear:
		bucketLabel = bucket
	}

	q := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("categories.name, transactions.amount").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("accounts.user_id = ?", userID).
		Where("transactions.income = ?", income)

	if f := bucketFilter(bucket, time.Now()); f != nil {
		if f.Exact {
			q = q.Where("transactions.date = ?", f.Date)
		} else {
			q = q.Where("transactions.date >= ?", f.Date)
		}
	}

	rows, err := q.Rows()
	if err != nil {
		return nil, fmt.Errorf("query category sums: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			name   string
			amount decimal.Decimal
		)
		if err := rows.Scan(&name, &amount); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		sums[name] = sums[name].Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}

	metrics.AggregatorQueries.WithLabelValues(bucketLabel).Inc()
	return sums, nil
}

// TotalBalance sums the balances of all accounts owned by a user.
// A user without accounts has a total of zero.
func (s *Service) TotalBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var accounts []models.Account
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&accounts).Error; err != nil {
		return decimal.Zero, fmt.Errorf("load accounts: %w", err)
	}

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total, nil
}
