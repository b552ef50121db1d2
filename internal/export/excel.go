// Package export builds the xlsx reports the treasurer downloads: a
// per-student statement and a whole-class workbook.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/alfarizqi-test/tabungan/internal/core"
)

// Workbook is a generated spreadsheet, ready to be written out.
type Workbook = excelize.File

const (
	sheetTransactions    = "Transaksi"
	sheetSummary         = "Ringkasan"
	sheetClassSummary    = "Ringkasan Siswa"
	sheetAllTransactions = "Semua Transaksi"
)

// SingleStudent builds a workbook with the student's transaction history
// and a summary sheet (name, NIS, balance).
func SingleStudent(s core.Student) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, sheetTransactions, 1, "Tanggal", "Tipe", "Jumlah", "Keterangan"); err != nil {
		return nil, err
	}
	for i, tx := range s.Transactions {
		err := setRow(f, sheetTransactions, i+2,
			tx.Date.Format("2006-01-02"), typeLabel(tx.Type), tx.Amount.Rupiah, tx.Description)
		if err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, fmt.Errorf("add summary sheet: %w", err)
	}
	rows := [][]any{
		{"Informasi", "Detail"},
		{"Nama", s.Name},
		{"NIS", s.NIM},
		{"Total Saldo", s.Balance.Rupiah},
	}
	for i, row := range rows {
		if err := setRow(f, sheetSummary, i+1, row...); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// AllStudents builds the class report: a summary sheet with one row per
// student and a sheet of every transaction, newest first.
func AllStudents(students []core.Student) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetClassSummary); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, sheetClassSummary, 1, "NIS", "Nama", "Total Saldo", "Jumlah Transaksi"); err != nil {
		return nil, err
	}
	for i, s := range students {
		err := setRow(f, sheetClassSummary, i+2, s.NIM, s.Name, s.Balance.Rupiah, len(s.Transactions))
		if err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(sheetAllTransactions); err != nil {
		return nil, fmt.Errorf("add transactions sheet: %w", err)
	}

	type flatTx struct {
		nim, name string
		tx        core.Transaction
	}
	var all []flatTx
	for _, s := range students {
		for _, tx := range s.Transactions {
			all = append(all, flatTx{nim: s.NIM, name: s.Name, tx: tx})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].tx.Date.After(all[j].tx.Date.Time)
	})

	if err := setRow(f, sheetAllTransactions, 1, "NIS", "Nama", "Tanggal", "Tipe", "Jumlah", "Keterangan"); err != nil {
		return nil, err
	}
	for i, row := range all {
		err := setRow(f, sheetAllTransactions, i+2,
			row.nim, row.name, row.tx.Date.Format("2006-01-02"),
			typeLabel(row.tx.Type), row.tx.Amount.Rupiah, row.tx.Description)
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

func typeLabel(t core.TransactionType) string {
	if t == core.Withdrawal {
		return "Tarik"
	}
	return "Simpan"
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
