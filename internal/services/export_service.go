package services

import (
	"bytes"
	"fmt"

	"afterhourshvac/internal/models"

	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var bookingHeaders = []string{
	"Created", "Customer", "Email", "Phone", "Address", "Service", "Category",
	"Price", "Status", "Payment", "Stripe Session", "Notes",
}

// ExportBookingsXLSX renders bookings as a single-sheet workbook.
func ExportBookingsXLSX(bookings []*models.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(bookingsSheet); err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	_ = f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex(bookingsSheet); err == nil {
		f.SetActiveSheet(index)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range bookingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(bookingsSheet, cell, h)
		_ = f.SetCellStyle(bookingsSheet, cell, cell, headerStyle)
	}

	for r, b := range bookings {
		row := []any{
			b.CreatedAt.Format("2006-01-02 15:04"),
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.CustomerAddress,
			b.ServiceName,
			b.ServiceCategory,
			b.ServicePrice,
			string(b.Status),
			string(b.PaymentStatus),
			derefString(b.StripeSessionID),
			b.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(bookingsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", r+2, err)
		}
	}

	_ = f.SetColWidth(bookingsSheet, "A", "A", 18)
	_ = f.SetColWidth(bookingsSheet, "B", "F", 24)
	_ = f.SetColWidth(bookingsSheet, "G", "K", 16)
	_ = f.SetColWidth(bookingsSheet, "L", "L", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
