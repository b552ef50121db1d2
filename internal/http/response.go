package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alfarizqi-test/tabungan/internal/core"
)

// messageResponse is the body of every error response.
type messageResponse struct {
	Message string `json:"message"`
}

// loginResponse carries the success flag plus role and, for students,
// the linked account.
type loginResponse struct {
	Success   bool      `json:"success"`
	Role      core.Role `json:"role,omitempty"`
	StudentID string    `json:"studentId,omitempty"`
	Name      string    `json:"name,omitempty"`
	Message   string    `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeDomainError maps ledger sentinel errors to the REST contract.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrStudentNotFound):
		writeError(w, http.StatusNotFound, "Student not found")
	case errors.Is(err, core.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, core.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "Saldo tidak mencukupi")
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrInvalidTransactionType):
		writeError(w, http.StatusBadRequest, "Data transaksi tidak valid")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
