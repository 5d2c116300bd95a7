package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestCSVQuotesDescriptionOnly(t *testing.T) {
	list := []core.Transaction{
		{
			Type:        core.Expense,
			Amount:      core.Money{Cents: 500},
			Category:    "Food",
			Description: "a,b",
			Date:        core.NewDate(2024, 1, 1),
		},
	}

	got := string(CSV(list))
	want := "Date,Type,Category,Description,Amount\n" +
		"2024-01-01,expense,Food,\"a,b\",5\n"
	if got != want {
		t.Fatalf("csv = %q, want %q", got, want)
	}
}

func TestCSVKeepsListOrder(t *testing.T) {
	list := []core.Transaction{
		{Type: core.Income, Amount: core.Money{Cents: 123450}, Category: "Salary", Description: "march pay", Date: core.NewDate(2024, 3, 1)},
		{Type: core.Expense, Amount: core.Money{Cents: 1299}, Category: "Shopping", Description: "socks", Date: core.NewDate(2024, 2, 28)},
	}

	lines := strings.Split(strings.TrimRight(string(CSV(list)), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[1] != `2024-03-01,income,Salary,"march pay",1234.5` {
		t.Fatalf("line 1 = %q", lines[1])
	}
	if lines[2] != `2024-02-28,expense,Shopping,"socks",12.99` {
		t.Fatalf("line 2 = %q", lines[2])
	}
}

func TestCSVEmptyList(t *testing.T) {
	got := string(CSV(nil))
	if got != "Date,Type,Category,Description,Amount\n" {
		t.Fatalf("csv = %q, want header only", got)
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)
	if got := Filename(at); got != "financial-data-2024-03-05.csv" {
		t.Fatalf("filename = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	list := []core.Transaction{
		{Type: core.Expense, Amount: core.Money{Cents: 500}, Category: "Food", Description: "a,b", Date: core.NewDate(2024, 1, 1)},
	}

	path, err := WriteFile(dir, at, list)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if path != filepath.Join(dir, "financial-data-2024-01-01.csv") {
		t.Fatalf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(CSV(list)) {
		t.Fatalf("file content = %q", data)
	}
}
