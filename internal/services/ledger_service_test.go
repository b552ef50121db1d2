package services

import (
	"context"
	"errors"
	"testing"

	"github.com/alfarizqi-test/tabungan/internal/core"
)

type fakeRepo struct {
	student   core.Student
	applied   []core.Transaction
	deleted   []string
	applyErr  error
	deleteErr error
}

func (f *fakeRepo) ListStudents(context.Context) ([]core.Student, error) {
	return []core.Student{f.student}, nil
}

func (f *fakeRepo) Student(_ context.Context, id string) (core.Student, error) {
	if id != f.student.ID {
		return core.Student{}, core.ErrStudentNotFound
	}
	return f.student, nil
}

func (f *fakeRepo) ApplyTransaction(_ context.Context, studentID string, tx core.Transaction) (core.Student, error) {
	if f.applyErr != nil {
		return core.Student{}, f.applyErr
	}
	f.applied = append(f.applied, tx)
	s := f.student
	if err := s.Apply(tx); err != nil {
		return core.Student{}, err
	}
	f.student = s
	return s, nil
}

func (f *fakeRepo) DeleteTransaction(_ context.Context, studentID, txID string) (core.Student, error) {
	if f.deleteErr != nil {
		return core.Student{}, f.deleteErr
	}
	f.deleted = append(f.deleted, txID)
	s := f.student
	if _, err := s.Remove(txID); err != nil {
		return core.Student{}, err
	}
	f.student = s
	return s, nil
}

func newFake() *fakeRepo {
	return &fakeRepo{student: core.Student{
		ID:      "1",
		Name:    "Ahmad Rizki",
		NIM:     "2023001",
		Balance: core.Money{Rupiah: 150000},
	}}
}

func TestAddTransactionBuildsValidTransaction(t *testing.T) {
	repo := newFake()
	svc := NewLedgerService(repo)

	updated, err := svc.AddTransaction(context.Background(), "1", core.Deposit, core.Money{Rupiah: 50000}, "  Weekly  ")
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if updated.Balance.Rupiah != 200000 {
		t.Fatalf("balance = %d, want 200000", updated.Balance.Rupiah)
	}
	if len(repo.applied) != 1 {
		t.Fatalf("applied %d transactions", len(repo.applied))
	}
	tx := repo.applied[0]
	if tx.ID == "" || tx.Date.IsZero() {
		t.Fatalf("transaction missing id or date: %+v", tx)
	}
	if tx.Description != "Weekly" {
		t.Fatalf("description not trimmed: %q", tx.Description)
	}
}

func TestAddTransactionRejectsInvalidInputBeforeRepo(t *testing.T) {
	cases := []struct {
		name   string
		typ    core.TransactionType
		amount int64
		desc   string
		want   error
	}{
		{"zero amount", core.Deposit, 0, "x", core.ErrInvalidAmount},
		{"negative amount", core.Withdrawal, -500, "x", core.ErrInvalidAmount},
		{"empty description", core.Deposit, 100, "   ", core.ErrEmptyDescription},
		{"bad type", core.TransactionType("transfer"), 100, "x", core.ErrInvalidTransactionType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFake()
			svc := NewLedgerService(repo)
			_, err := svc.AddTransaction(context.Background(), "1", tc.typ, core.Money{Rupiah: tc.amount}, tc.desc)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if len(repo.applied) != 0 {
				t.Fatal("invalid transaction reached the repository")
			}
		})
	}
}

func TestAddTransactionPropagatesRepoErrors(t *testing.T) {
	repo := newFake()
	repo.applyErr = core.ErrStudentNotFound
	svc := NewLedgerService(repo)

	_, err := svc.AddTransaction(context.Background(), "99", core.Deposit, core.Money{Rupiah: 100}, "x")
	if !errors.Is(err, core.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	repo := newFake()
	svc := NewLedgerService(repo)

	updated, err := svc.AddTransaction(context.Background(), "1", core.Withdrawal, core.Money{Rupiah: 25000}, "Penarikan")
	if err != nil {
		t.Fatal(err)
	}
	txID := updated.Transactions[0].ID

	after, err := svc.DeleteTransaction(context.Background(), "1", txID)
	if err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if after.Balance.Rupiah != 150000 {
		t.Fatalf("balance = %d, want 150000", after.Balance.Rupiah)
	}
}

type fakeCreds struct{ creds []core.Credential }

func (f fakeCreds) Authenticate(_ context.Context, username, password string) (core.Credential, error) {
	for _, c := range f.creds {
		if c.Username == username && c.Password == password {
			return c, nil
		}
	}
	return core.Credential{}, core.ErrBadCredentials
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(fakeCreds{creds: []core.Credential{
		{Username: "2023001", Password: "ahmad123", Role: core.RoleStudent, StudentID: "1", Name: "Ahmad Rizki"},
	}})

	cred, err := svc.Login(context.Background(), "2023001", "ahmad123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if cred.StudentID != "1" {
		t.Fatalf("unexpected credential: %+v", cred)
	}

	if _, err := svc.Login(context.Background(), "2023001", "nope"); !errors.Is(err, core.ErrBadCredentials) {
		t.Fatalf("err = %v, want ErrBadCredentials", err)
	}
}
