package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTransactionTypeIsValid(t *testing.T) {
	if !Income.IsValid() || !Expense.IsValid() {
		t.Fatal("known types must be valid")
	}
	if TransactionType("transfer").IsValid() {
		t.Fatal("unknown type must be invalid")
	}
}

func TestTransactionFieldsValidate(t *testing.T) {
	good := TransactionFields{
		Type:        Expense,
		Amount:      Money{Cents: 100},
		Category:    "Food & Dining",
		Description: "lunch",
		Date:        NewDate(2024, 3, 5),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*TransactionFields)
		want   error
	}{
		{"bad type", func(f *TransactionFields) { f.Type = "transfer" }, ErrInvalidType},
		{"zero amount", func(f *TransactionFields) { f.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(f *TransactionFields) { f.Amount = Money{Cents: -1} }, ErrInvalidAmount},
		{"empty category", func(f *TransactionFields) { f.Category = "  " }, ErrEmptyCategory},
		{"empty description", func(f *TransactionFields) { f.Description = "" }, ErrEmptyDescription},
		{"zero date", func(f *TransactionFields) { f.Date = Date{} }, ErrInvalidDate},
	}
	for _, tc := range cases {
		f := good
		tc.mutate(&f)
		if err := f.Validate(); err != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestWithFieldsPreservesIdentity(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	orig := Transaction{
		ID:          "abc",
		Type:        Income,
		Amount:      Money{Cents: 100000},
		Category:    "Salary",
		Description: "march",
		Date:        NewDate(2024, 3, 1),
		CreatedAt:   created,
	}
	updated := orig.WithFields(TransactionFields{
		Type:        Expense,
		Amount:      Money{Cents: 500},
		Category:    "Food & Dining",
		Description: "coffee",
		Date:        NewDate(2024, 3, 9),
	})
	if updated.ID != "abc" || !updated.CreatedAt.Equal(created) {
		t.Fatal("ID and CreatedAt must survive a field replacement")
	}
	if updated.Type != Expense || updated.Amount.Cents != 500 || updated.Category != "Food & Dining" {
		t.Fatalf("fields not replaced: %+v", updated)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 3, 5)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-05"` {
		t.Fatalf("marshaled as %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip changed the date: %v != %v", back, d)
	}
}

func TestDateJSONAcceptsTimestamps(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-05T14:22:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.String() != "2024-03-05" {
		t.Fatalf("got %s, want 2024-03-05", d)
	}
}

func TestCategoriesForType(t *testing.T) {
	income := CategoriesForType(Income)
	expense := CategoriesForType(Expense)
	if len(income) != 4 {
		t.Fatalf("income categories = %d, want 4", len(income))
	}
	if len(expense) != 8 {
		t.Fatalf("expense categories = %d, want 8", len(expense))
	}
	for _, c := range income {
		if c.Type != Income {
			t.Fatalf("category %s has wrong type", c.Name)
		}
	}
	if _, ok := CategoryByName("Salary"); !ok {
		t.Fatal("Salary category missing")
	}
	if _, ok := CategoryByName("Nope"); ok {
		t.Fatal("unexpected category")
	}
}
