package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

const (
	RoleStudent   Role = "student"
	RoleTreasurer Role = "treasurer"
)

type (
	TransactionType string

	Role string

	// Date is a calendar date without time-of-day. It marshals to and
	// from the YYYY-MM-DD form used in the ledger file.
	Date struct {
		time.Time
	}

	// Transaction is one ledger entry. Entries are immutable once
	// created; the only supported change is deletion, which reverses
	// the entry's effect on the student's balance.
	Transaction struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
	}

	// Student is one savings account. Transactions are ordered newest
	// first, and Balance always equals the net sum of the history.
	Student struct {
		ID           string        `json:"id"`
		Name         string        `json:"name"`
		NIM          string        `json:"nim"`
		Balance      Money         `json:"balance"`
		Transactions []Transaction `json:"transactions"`
	}

	// Credential is one login entry. Credentials are reference data and
	// are never mutated by the application.
	Credential struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		Role      Role   `json:"role"`
		StudentID string `json:"studentId,omitempty"`
		Name      string `json:"name,omitempty"`
	}
)

var (
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrEmptyDescription       = errors.New("empty description")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrStudentNotFound        = errors.New("student not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrBadCredentials         = errors.New("incorrect username or password")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (t TransactionType) Valid() bool {
	return t == Deposit || t == Withdrawal
}

// NewTransaction builds a transaction dated today with a random unique
// identifier. Validation is the caller's concern.
func NewTransaction(typ TransactionType, amount Money, description string) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Date:        Today(),
		Type:        typ,
		Amount:      amount,
		Description: strings.TrimSpace(description),
	}
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	return nil
}

// effect is the signed change the transaction applies to a balance.
func (t Transaction) effect() int64 {
	if t.Type == Withdrawal {
		return -t.Amount.Rupiah
	}
	return t.Amount.Rupiah
}

// Apply validates tx and records it at the head of the history,
// adjusting the balance. A withdrawal exceeding the balance is rejected
// and leaves the student unchanged.
func (s *Student) Apply(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if tx.Type == Withdrawal && tx.Amount.Rupiah > s.Balance.Rupiah {
		return ErrInsufficientFunds
	}
	s.Transactions = append([]Transaction{tx}, s.Transactions...)
	s.Balance.Rupiah += tx.effect()
	return nil
}

// Remove deletes the transaction with the given id and reverses its
// effect on the balance.
func (s *Student) Remove(txID string) (Transaction, error) {
	for i, tx := range s.Transactions {
		if tx.ID == txID {
			s.Transactions = append(s.Transactions[:i:i], s.Transactions[i+1:]...)
			s.Balance.Rupiah -= tx.effect()
			return tx, nil
		}
	}
	return Transaction{}, ErrTransactionNotFound
}

// Net sums the effects of the current history. For a consistent ledger
// it equals the stored balance.
func (s *Student) Net() Money {
	var total int64
	for _, tx := range s.Transactions {
		total += tx.effect()
	}
	return Money{Rupiah: total}
}

// Consistent reports whether the stored balance matches the history.
func (s *Student) Consistent() bool {
	return s.Balance.Rupiah == s.Net().Rupiah
}
