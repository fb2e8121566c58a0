package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
	"github.com/josh-kwaku/pos-ledger/internal/logging"
	"github.com/josh-kwaku/pos-ledger/internal/service"
	"github.com/josh-kwaku/pos-ledger/internal/statement"
)

type ledgerService interface {
	Balance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	History(ctx context.Context, customerID uuid.UUID) ([]domain.LedgerRow, error)
	Statement(ctx context.Context, customerID uuid.UUID, from, to *time.Time) (*statement.Statement, error)
	Balances(ctx context.Context) ([]service.CustomerBalance, error)
}

type LedgerHandler struct {
	ledger ledgerService
}

func NewLedgerHandler(ledger ledgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

type balanceDTO struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name,omitempty"`
	Balance    string    `json:"balance"`
}

type ledgerRowDTO struct {
	SourceID      uuid.UUID  `json:"source_id"`
	Kind          string     `json:"kind"`
	OccurredAt    *time.Time `json:"occurred_at"`
	Amount        string     `json:"amount"`
	BalanceBefore string     `json:"balance_before"`
	BalanceAfter  string     `json:"balance_after"`
	Label         string     `json:"label"`
	Notes         string     `json:"notes"`
}

type ledgerDTO struct {
	CustomerID uuid.UUID      `json:"customer_id"`
	Balance    string         `json:"balance"`
	Rows       []ledgerRowDTO `json:"rows"`
}

func toLedgerRowDTO(r domain.LedgerRow) ledgerRowDTO {
	dto := ledgerRowDTO{
		SourceID:      r.SourceID,
		Kind:          string(r.Kind),
		Amount:        r.AbsAmount().StringFixed(2),
		BalanceBefore: r.BalanceBefore.StringFixed(2),
		BalanceAfter:  r.BalanceAfter.StringFixed(2),
		Label:         r.Label,
		Notes:         r.Notes,
	}
	if !r.OccurredAt.IsZero() {
		at := r.OccurredAt
		dto.OccurredAt = &at
	}
	return dto
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	bal, err := h.ledger.Balance(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, balanceDTO{CustomerID: id, Balance: bal.StringFixed(2)})
}

// Ledger returns the customer's history, most recent first. The balance is
// the remaining balance of the newest row, or zero for an empty history.
func (h *LedgerHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	id, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	rows, err := h.ledger.History(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dto := ledgerDTO{CustomerID: id, Balance: decimal.Zero.StringFixed(2), Rows: make([]ledgerRowDTO, len(rows))}
	if len(rows) > 0 {
		dto.Balance = rows[0].BalanceAfter.StringFixed(2)
	}
	for i, row := range rows {
		dto.Rows[i] = toLedgerRowDTO(row)
	}
	RespondSuccess(w, http.StatusOK, dto)
}

type statementWriter struct {
	contentType string
	extension   string
	write       func(io.Writer, statement.Statement) error
}

var statementFormats = map[string]statementWriter{
	"csv":  {"text/csv; charset=utf-8", "csv", statement.WriteCSV},
	"html": {"text/html; charset=utf-8", "html", statement.WriteHTML},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", statement.WriteXLSX},
}

// Statement renders the customer statement. from and to accept RFC 3339
// timestamps or plain dates; a plain to date covers the whole day.
func (h *LedgerHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = "csv"
	}
	out, ok := statementFormats[format]
	if !ok {
		RespondAppError(w, ErrUnsupportedFormat, nil)
		return
	}

	var fields []FieldError
	from, err := parseBound(q.Get("from"), false)
	if err != nil {
		fields = append(fields, FieldError{Field: "from", Message: "must be a date (2006-01-02) or RFC 3339 timestamp"})
	}
	to, err := parseBound(q.Get("to"), true)
	if err != nil {
		fields = append(fields, FieldError{Field: "to", Message: "must be a date (2006-01-02) or RFC 3339 timestamp"})
	}
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	st, err := h.ledger.Statement(r.Context(), id, from, to)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", out.contentType)
	if format != "html" {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statement-%s.%s"`, id, out.extension))
	}
	if err := out.write(w, *st); err != nil {
		logging.FromContext(r.Context()).Error("failed to write statement",
			"customer_id", id,
			"format", format,
			"error", err,
		)
	}
}

func (h *LedgerHandler) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.ledger.Balances(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("balance summary failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	items := make([]balanceDTO, len(balances))
	for i, b := range balances {
		items[i] = balanceDTO{CustomerID: b.CustomerID, Name: b.Name, Balance: b.Balance.StringFixed(2)}
	}
	RespondSuccess(w, http.StatusOK, items)
}

const dateOnly = "2006-01-02"

func parseBound(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
