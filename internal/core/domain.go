package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Date is a calendar date with no time component. Transactions carry a
	// Date for when they occurred and a separate CreatedAt timestamp for
	// when the record was entered.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// TransactionFields are the mutable fields of a transaction, supplied
	// at creation and replaced wholesale on update. ID and CreatedAt are
	// never part of them.
	TransactionFields struct {
		Type        TransactionType
		Amount      Money
		Category    string
		Description string
		Date        Date
	}

	User struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Credential is stored separately from User so the user directory and
	// the login secrets can be read and written independently. The
	// password is kept in plaintext: this tracker has no real
	// authentication by design and documents that openly.
	Credential struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		UserID   string `json:"userId"`
	}
)

var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")

	// ErrTransactionNotFound is returned by repositories when an update
	// targets an id that matches no stored record.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// IsValid reports whether t is one of the two known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// String formats the date as YYYY-MM-DD, the form used in storage and in
// CSV exports.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes "YYYY-MM-DD". Full RFC 3339 timestamps are also
// accepted and truncated to their date, so records written by earlier
// versions still parse.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate applies presence checks only. Category membership is not
// enforced; any non-empty string is accepted.
func (f TransactionFields) Validate() error {
	if !f.Type.IsValid() {
		return ErrInvalidType
	}
	if err := f.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(f.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(f.Description) == "" {
		return ErrEmptyDescription
	}
	if err := f.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// Fields returns the mutable fields of the transaction.
func (t Transaction) Fields() TransactionFields {
	return TransactionFields{
		Type:        t.Type,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	}
}

// WithFields returns a copy of the transaction with its mutable fields
// replaced. ID and CreatedAt are preserved.
func (t Transaction) WithFields(f TransactionFields) Transaction {
	t.Type = f.Type
	t.Amount = f.Amount
	t.Category = f.Category
	t.Description = f.Description
	t.Date = f.Date
	return t
}
