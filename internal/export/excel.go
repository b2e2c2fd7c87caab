package export

import (
	"fmt"

	"courierdesk/internal/models"
	"courierdesk/internal/timeslot"

	"github.com/xuri/excelize/v2"
)

const scheduleSheet = "Schedule"

var scheduleHeaders = []string{
	"Date", "Time", "Company", "Requester", "Job Type", "Department",
	"Detail", "Contact Name", "Phone", "Messenger", "Status",
}

// ScheduleWorkbook renders the schedule as an xlsx workbook. Time and status
// columns carry display labels, not stored wire values.
func ScheduleWorkbook(bookings []models.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(scheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range scheduleHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(scheduleSheet, cell, header)
		_ = f.SetCellStyle(scheduleSheet, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 2
		values := []any{
			b.BookingDate,
			timeslot.Decode(b.BookingTime),
			b.CompanyName,
			b.RequesterName,
			b.JobType,
			b.Department,
			b.Detail,
			b.ContactName,
			b.ContactPhone,
			b.MessengerName,
			b.Status.Label(),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(scheduleSheet, cell, value)
		}
	}

	_ = f.SetColWidth(scheduleSheet, "A", "B", 14)
	_ = f.SetColWidth(scheduleSheet, "C", "C", 25)
	_ = f.SetColWidth(scheduleSheet, "D", "K", 18)

	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error saving workbook: %v", err)
	}
	return buf.Bytes(), nil
}
