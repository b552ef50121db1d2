// Package storage persists the ledger collections as flat JSON files.
// The whole collection is held in memory and rewritten in full on every
// mutation; a single writer lock serializes mutations so concurrent
// requests cannot lose updates.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/alfarizqi-test/tabungan/internal/core"
)

type LedgerFile struct {
	mu       sync.RWMutex
	path     string
	students []core.Student
}

// OpenLedgerFile loads the student collection from path. A missing file
// starts an empty ledger and writes it out immediately.
func OpenLedgerFile(path string) (*LedgerFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lf := &LedgerFile{path: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Warn("Students file missing, starting empty ledger", "file", path)
		lf.students = []core.Student{}
		if err := lf.flushLocked(); err != nil {
			return nil, err
		}
		return lf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read students file: %w", err)
	}

	if err := json.Unmarshal(raw, &lf.students); err != nil {
		return nil, fmt.Errorf("decode students file %s: %w", path, err)
	}

	// Flag ledgers whose stored balance drifted from their history.
	for _, s := range lf.students {
		if !s.Consistent() {
			slog.Warn("Student balance does not match transaction history",
				"student_id", s.ID,
				"balance", s.Balance.Rupiah,
				"net", s.Net().Rupiah)
		}
	}

	slog.Info("Ledger loaded", "file", path, "students", len(lf.students))
	return lf, nil
}

// ListStudents returns all students in insertion order.
func (lf *LedgerFile) ListStudents(_ context.Context) ([]core.Student, error) {
	lf.mu.RLock()
	defer lf.mu.RUnlock()

	out := make([]core.Student, len(lf.students))
	for i, s := range lf.students {
		out[i] = cloneStudent(s)
	}
	return out, nil
}

// Student returns the student with the given id.
func (lf *LedgerFile) Student(_ context.Context, id string) (core.Student, error) {
	lf.mu.RLock()
	defer lf.mu.RUnlock()

	for _, s := range lf.students {
		if s.ID == id {
			return cloneStudent(s), nil
		}
	}
	return core.Student{}, core.ErrStudentNotFound
}

// ApplyTransaction records tx against the student and persists the full
// collection. On any error, both memory and file are left unchanged.
func (lf *LedgerFile) ApplyTransaction(ctx context.Context, studentID string, tx core.Transaction) (core.Student, error) {
	return lf.mutate(ctx, studentID, func(s *core.Student) error {
		return s.Apply(tx)
	})
}

// DeleteTransaction removes the transaction, reverses its balance
// effect, and persists the full collection.
func (lf *LedgerFile) DeleteTransaction(ctx context.Context, studentID, txID string) (core.Student, error) {
	return lf.mutate(ctx, studentID, func(s *core.Student) error {
		_, err := s.Remove(txID)
		return err
	})
}

// mutate runs fn against a copy of the student under the writer lock and
// commits memory only after the file write succeeds.
func (lf *LedgerFile) mutate(ctx context.Context, studentID string, fn func(*core.Student) error) (core.Student, error) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	select {
	case <-ctx.Done():
		return core.Student{}, ctx.Err()
	default:
	}

	idx := -1
	for i, s := range lf.students {
		if s.ID == studentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.Student{}, core.ErrStudentNotFound
	}

	updated := cloneStudent(lf.students[idx])
	if err := fn(&updated); err != nil {
		return core.Student{}, err
	}

	prev := lf.students[idx]
	lf.students[idx] = updated
	if err := lf.flushLocked(); err != nil {
		lf.students[idx] = prev
		return core.Student{}, err
	}

	return cloneStudent(updated), nil
}

// flushLocked rewrites the whole collection. Callers must hold mu. The
// write goes through a temp file and rename so a crash mid-write cannot
// truncate the ledger.
func (lf *LedgerFile) flushLocked() error {
	data, err := json.MarshalIndent(lf.students, "", "  ")
	if err != nil {
		return fmt.Errorf("encode students: %w", err)
	}

	tmp := lf.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write students file: %w", err)
	}
	if err := os.Rename(tmp, lf.path); err != nil {
		return fmt.Errorf("replace students file: %w", err)
	}
	return nil
}

func cloneStudent(s core.Student) core.Student {
	out := s
	out.Transactions = append([]core.Transaction(nil), s.Transactions...)
	return out
}
