package application

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Bookings"

var exportHeaders = []string{
	"Booking ID", "Room ID", "User ID", "Start", "End",
	"Hours", "Total Cost", "Payment Method", "Status", "Created",
}

// ExportBookings renders every booking, newest first, as an xlsx workbook (admin).
func (s *BookingService) ExportBookings(ctx context.Context) ([]byte, error) {
	bookings, _, err := s.ListAllBookings(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeHeader(f, exportSheet); err != nil {
		return nil, err
	}

	for i, b := range bookings {
		row := []interface{}{
			b.ID.String(),
			b.RoomID.String(),
			b.UserID.String(),
			b.StartTime.In(s.location).Format(time.RFC3339),
			b.EndTime.In(s.location).Format(time.RFC3339),
			b.DurationHours,
			b.TotalCost.InexactFloat64(),
			b.PaymentMethod,
			b.Status,
			b.CreatedAt.In(s.location).Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("bookings exported", zap.Int("rows", len(bookings)))
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return fmt.Errorf("failed to address header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}
