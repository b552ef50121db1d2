package export

import (
	"testing"

	"github.com/alfarizqi-test/tabungan/internal/core"
)

func sample() []core.Student {
	return []core.Student{
		{
			ID: "1", Name: "Ahmad Rizki", NIM: "2023001",
			Balance: core.Money{Rupiah: 150000},
			Transactions: []core.Transaction{
				{ID: "t2", Date: core.NewDate(2025, 11, 8), Type: core.Deposit, Amount: core.Money{Rupiah: 100000}, Description: "Simpanan Bulanan"},
				{ID: "t1", Date: core.NewDate(2025, 11, 1), Type: core.Deposit, Amount: core.Money{Rupiah: 50000}, Description: "Simpanan Mingguan"},
			},
		},
		{
			ID: "3", Name: "Budi Santoso", NIM: "2023003",
			Balance: core.Money{Rupiah: 75000},
			Transactions: []core.Transaction{
				{ID: "t8", Date: core.NewDate(2025, 11, 5), Type: core.Withdrawal, Amount: core.Money{Rupiah: 25000}, Description: "Penarikan"},
				{ID: "t7", Date: core.NewDate(2025, 11, 1), Type: core.Deposit, Amount: core.Money{Rupiah: 100000}, Description: "Simpanan Awal"},
			},
		},
	}
}

func TestSingleStudentWorkbook(t *testing.T) {
	wb, err := SingleStudent(sample()[1])
	if err != nil {
		t.Fatalf("SingleStudent: %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) != 2 || sheets[0] != sheetTransactions || sheets[1] != sheetSummary {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	typ, err := wb.GetCellValue(sheetTransactions, "B2")
	if err != nil {
		t.Fatal(err)
	}
	if typ != "Tarik" {
		t.Fatalf("B2 = %q, want Tarik", typ)
	}

	name, err := wb.GetCellValue(sheetSummary, "B2")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Budi Santoso" {
		t.Fatalf("summary name = %q", name)
	}
	balance, err := wb.GetCellValue(sheetSummary, "B4")
	if err != nil {
		t.Fatal(err)
	}
	if balance != "75000" {
		t.Fatalf("summary balance = %q", balance)
	}
}

func TestAllStudentsWorkbook(t *testing.T) {
	wb, err := AllStudents(sample())
	if err != nil {
		t.Fatalf("AllStudents: %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) != 2 || sheets[0] != sheetClassSummary || sheets[1] != sheetAllTransactions {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	rows, err := wb.GetRows(sheetClassSummary)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("summary rows = %d, want header + 2 students", len(rows))
	}
	if rows[1][0] != "2023001" || rows[2][0] != "2023003" {
		t.Fatalf("unexpected summary order: %v", rows)
	}

	txRows, err := wb.GetRows(sheetAllTransactions)
	if err != nil {
		t.Fatal(err)
	}
	if len(txRows) != 5 {
		t.Fatalf("transaction rows = %d, want header + 4", len(txRows))
	}
	// Newest first across students.
	if txRows[1][2] != "2025-11-08" {
		t.Fatalf("first transaction date = %q, want newest", txRows[1][2])
	}
	if txRows[len(txRows)-1][2] != "2025-11-01" {
		t.Fatalf("last transaction date = %q, want oldest", txRows[len(txRows)-1][2])
	}
}

func TestAllStudentsEmpty(t *testing.T) {
	wb, err := AllStudents(nil)
	if err != nil {
		t.Fatalf("AllStudents: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(sheetClassSummary)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
