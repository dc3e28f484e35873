// Package inputval validates operator input before anything is sent to the
// scoring API.
package inputval

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func v() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("spreadsheet", func(fl validator.FieldLevel) bool {
			return IsSpreadsheetName(fl.Field().String())
		})
	})
	return validate
}

// Login is the sign-in form.
type Login struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,max=256"`
}

// InterviewScore is the interview score form. Score is already parsed.
type InterviewScore struct {
	ID    int64   `validate:"gt=0"`
	Score float64 `validate:"gte=0,lte=100"`
}

// Upload is the round upload form.
type Upload struct {
	Year     int    `validate:"gte=2000,lte=2100"`
	Filename string `validate:"required,spreadsheet"`
	Size     int64  `validate:"gt=0"`
	Note     string `validate:"max=1000"`
}

// Ranking is the interview roster creation form.
type Ranking struct {
	Year int `validate:"gte=2000,lte=2100"`
	Top  int `validate:"gte=1,lte=999"`
}

// FieldError is one failed rule, phrased for the operator.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the set of failed rules of one form.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, " ")
}

// First returns the first message, or "".
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// Check validates s and returns Errors (nil when valid).
func Check(s any) error {
	err := v().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(Errors, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// Message returns a single operator-facing message for err.
func Message(err error) string {
	var e Errors
	if errors.As(err, &e) {
		return e.First()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func message(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "Email.required":
		return "Email wajib diisi."
	case "Email.email":
		return "Format email tidak valid."
	case "Password.required":
		return "Password wajib diisi."
	case "Score.gte", "Score.lte":
		return "Nilai wawancara harus antara 0 dan 100."
	case "Filename.required":
		return "Pilih file terlebih dahulu."
	case "Filename.spreadsheet":
		return "File harus berformat Excel (.xlsx atau .xls)."
	case "Size.gt":
		return "File kosong."
	case "Note.max":
		return "Catatan maksimal 1000 karakter."
	case "Top.gte", "Top.lte":
		return "Jumlah peringkat tidak valid."
	case "Year.gte", "Year.lte":
		return "Tahun tidak valid."
	}
	return fmt.Sprintf("%s tidak valid.", fe.Field())
}

// IsSpreadsheetName reports whether name has an Excel extension.
func IsSpreadsheetName(name string) bool {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(name))) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// ErrNotANumber is returned by ParseScore for non-numeric input.
var ErrNotANumber = errors.New("Nilai wawancara harus berupa angka.")

// ParseScore parses a score typed by an operator. A decimal comma is
// accepted.
func ParseScore(raw string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return 0, ErrNotANumber
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	return f, nil
}
