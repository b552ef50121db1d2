package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alfarizqi-test/tabungan/internal/core"
	"github.com/alfarizqi-test/tabungan/internal/export"
	applog "github.com/alfarizqi-test/tabungan/internal/log"
)

type LedgerService interface {
	Students(ctx context.Context) ([]core.Student, error)
	Student(ctx context.Context, id string) (core.Student, error)
	AddTransaction(ctx context.Context, studentID string, typ core.TransactionType, amount core.Money, description string) (core.Student, error)
	DeleteTransaction(ctx context.Context, studentID, txID string) (core.Student, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (core.Credential, error)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type transactionRequest struct {
	Amount      core.Money           `json:"amount"`
	Description string               `json:"description"`
	Type        core.TransactionType `json:"type"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Format permintaan tidak valid")
		return
	}

	cred, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, core.ErrBadCredentials) {
			writeJSON(w, http.StatusUnauthorized, loginResponse{
				Success: false,
				Message: "Username / password salah",
			})
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success:   true,
		Role:      cred.Role,
		StudentID: cred.StudentID,
		Name:      cred.Name,
	})
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.ledger.Students(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "List students failed", applog.FieldError, err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	student, err := s.ledger.Student(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Data transaksi tidak valid")
		return
	}

	student, err := s.ledger.AddTransaction(r.Context(),
		chi.URLParam(r, "id"), req.Type, req.Amount, sanitizeInput(req.Description))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.exportCache.Purge()
	writeJSON(w, http.StatusOK, student)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	student, err := s.ledger.DeleteTransaction(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "txID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.exportCache.Purge()
	writeJSON(w, http.StatusOK, student)
}

func (s *Server) handleExportAll(w http.ResponseWriter, r *http.Request) {
	data, ok := s.exportCache.Get(exportKeyAll)
	if !ok {
		// The epoch is taken before the ledger snapshot so a mutation
		// racing this export invalidates the render instead of letting
		// it cache pre-mutation data.
		epoch := s.exportCache.Epoch()
		students, err := s.ledger.Students(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		wb, err := export.AllStudents(students)
		if err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Export failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "Gagal membuat laporan")
			return
		}
		data, err = renderWorkbook(wb)
		if err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Workbook render failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "Gagal membuat laporan")
			return
		}
		s.exportCache.SetAt(epoch, exportKeyAll, data)
	}

	name := "Tabungan_Kelas_" + classLabel + "_" + time.Now().Format("2006-01-02") + ".xlsx"
	writeWorkbook(w, data, name)
}

func (s *Server) handleExportStudent(w http.ResponseWriter, r *http.Request) {
	epoch := s.exportCache.Epoch()
	student, err := s.ledger.Student(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	key := exportKeyStudent + student.ID
	data, ok := s.exportCache.Get(key)
	if !ok {
		wb, err := export.SingleStudent(student)
		if err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Export failed",
				applog.FieldError, err, applog.FieldStudentID, student.ID)
			writeError(w, http.StatusInternalServerError, "Gagal membuat laporan")
			return
		}
		data, err = renderWorkbook(wb)
		if err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Workbook render failed",
				applog.FieldError, err, applog.FieldStudentID, student.ID)
			writeError(w, http.StatusInternalServerError, "Gagal membuat laporan")
			return
		}
		s.exportCache.SetAt(epoch, key, data)
	}

	name := "Tabungan_" + strings.ReplaceAll(student.Name, " ", "_") + ".xlsx"
	writeWorkbook(w, data, name)
}

const (
	exportKeyAll     = "all"
	exportKeyStudent = "student:"

	// classLabel names the class in the report filename.
	classLabel = "XI_TKJ"
)

func renderWorkbook(wb *export.Workbook) ([]byte, error) {
	defer wb.Close()
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeWorkbook(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}
