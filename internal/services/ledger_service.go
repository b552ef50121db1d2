// Package services orchestrates ledger and authentication operations
// between the HTTP layer and the file-backed stores.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alfarizqi-test/tabungan/internal/core"
)

type ledgerRepository interface {
	ListStudents(ctx context.Context) ([]core.Student, error)
	Student(ctx context.Context, id string) (core.Student, error)
	ApplyTransaction(ctx context.Context, studentID string, tx core.Transaction) (core.Student, error)
	DeleteTransaction(ctx context.Context, studentID, txID string) (core.Student, error)
}

// LedgerService owns the balance-mutation contract: every caller goes
// through here, so there is a single source of truth for how a
// transaction is built, validated, and applied.
type LedgerService struct {
	repo ledgerRepository
}

func NewLedgerService(repo ledgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

func (s *LedgerService) Students(ctx context.Context) ([]core.Student, error) {
	students, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *LedgerService) Student(ctx context.Context, id string) (core.Student, error) {
	return s.repo.Student(ctx, id)
}

// AddTransaction builds a dated, uniquely-identified transaction and
// applies it to the student's ledger.
func (s *LedgerService) AddTransaction(ctx context.Context, studentID string, typ core.TransactionType, amount core.Money, description string) (core.Student, error) {
	tx := core.NewTransaction(typ, amount, description)
	if err := tx.Validate(); err != nil {
		return core.Student{}, err
	}

	updated, err := s.repo.ApplyTransaction(ctx, studentID, tx)
	if err != nil {
		return core.Student{}, err
	}

	slog.InfoContext(ctx, "Transaction applied",
		"student_id", updated.ID,
		"transaction_id", tx.ID,
		"transaction_type", string(tx.Type),
		"amount", tx.Amount.Rupiah,
		"balance", updated.Balance.Rupiah)

	return updated, nil
}

// DeleteTransaction removes a transaction and reverses its effect on the
// student's balance.
func (s *LedgerService) DeleteTransaction(ctx context.Context, studentID, txID string) (core.Student, error) {
	updated, err := s.repo.DeleteTransaction(ctx, studentID, txID)
	if err != nil {
		return core.Student{}, err
	}

	slog.InfoContext(ctx, "Transaction deleted",
		"student_id", updated.ID,
		"transaction_id", txID,
		"balance", updated.Balance.Rupiah)

	return updated, nil
}
