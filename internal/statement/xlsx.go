package statement

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Statement"

// moneyFormat is the built-in "#,##0.00" number format.
const moneyFormat = 4

// WriteXLSX writes money as numeric cells so the sheet can be summed. Values
// are written from their two-decimal text form, never from a float
// conversion of the decimal.
func WriteXLSX(w io.Writer, st Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("WriteXLSX: rename sheet: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return fmt.Errorf("WriteXLSX: money style: %w", err)
	}
	sw := sheetWriter{f: f, money: money}

	if err := f.SetCellStr(sheetName, "A1", st.Customer.Name); err != nil {
		return fmt.Errorf("WriteXLSX: title: %w", err)
	}
	if err := sw.labelled(2, "Opening balance", st.OpeningBalance); err != nil {
		return fmt.Errorf("WriteXLSX: opening: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A4", &header); err != nil {
		return fmt.Errorf("WriteXLSX: header: %w", err)
	}

	rowNo := 5
	for _, r := range st.Rows {
		if err := sw.row(rowNo, formatDate(r.OccurredAt), r.BalanceBefore, r.AbsAmount(), r.Label, r.BalanceAfter, r.Notes); err != nil {
			return fmt.Errorf("WriteXLSX: row %s: %w", r.SourceID, err)
		}
		rowNo++
	}

	if err := sw.labelled(rowNo+1, "Remaining balance", st.ClosingBalance); err != nil {
		return fmt.Errorf("WriteXLSX: closing: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	return nil
}

type sheetWriter struct {
	f     *excelize.File
	money int
}

func (s sheetWriter) labelled(row int, label string, amount decimal.Decimal) error {
	if err := s.text(1, row, label); err != nil {
		return err
	}
	return s.amount(2, row, amount)
}

func (s sheetWriter) row(row int, date string, before, amount decimal.Decimal, label string, after decimal.Decimal, notes string) error {
	if err := s.text(1, row, date); err != nil {
		return err
	}
	if err := s.amount(2, row, before); err != nil {
		return err
	}
	if err := s.amount(3, row, amount); err != nil {
		return err
	}
	if err := s.text(4, row, label); err != nil {
		return err
	}
	if err := s.amount(5, row, after); err != nil {
		return err
	}
	return s.text(6, row, notes)
}

func (s sheetWriter) text(col, row int, v string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return s.f.SetCellStr(sheetName, cell, v)
}

func (s sheetWriter) amount(col, row int, d decimal.Decimal) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	fixed := d.StringFixed(2)
	v, err := strconv.ParseFloat(fixed, 64)
	if err != nil {
		return fmt.Errorf("amount %s: %w", fixed, err)
	}
	if err := s.f.SetCellFloat(sheetName, cell, v, 2, 64); err != nil {
		return err
	}
	return s.f.SetCellStyle(sheetName, cell, cell, s.money)
}
