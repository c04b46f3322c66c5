package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders report rows into downloadable files. It returns the file
// bytes, a filename and the MIME type.
type Exporter interface {
	ExportParticipants(format string, rows []ParticipantReportRow) ([]byte, string, string, error)
	ExportMyEvents(format string, rows []MyEventReportRow) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) ExportParticipants(format string, rows []ParticipantReportRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.participantsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("participants_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.participantsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("participants_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.participantsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("participants_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *exporter) ExportMyEvents(format string, rows []MyEventReportRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.myEventsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("my_events_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.myEventsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("my_events_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.myEventsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("my_events_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

// ===========================
// 👥 Participants
func (e *exporter) participantsCSV(rows []ParticipantReportRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"name", "email", "about", "interests", "status"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Name, r.Email, r.About, r.Interests, r.Status}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (e *exporter) participantsExcel(rows []ParticipantReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Participants"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Name", "Email", "About", "Interests", "Status"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.About)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Interests)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Status)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) participantsPDF(rows []ParticipantReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Event Participants")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Name", "Email", "Interests", "Status"}
	widths := []float64{45, 60, 55, 30}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, r.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Interests, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ===========================
// 📆 My events
func (e *exporter) myEventsCSV(rows []MyEventReportRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"name", "interest", "location", "start_date", "end_date", "participants", "status"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.Name,
			r.Interest,
			r.Location,
			r.StartDate.Format(time.RFC3339),
			r.EndDate.Format(time.RFC3339),
			strconv.Itoa(r.Participants),
			r.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (e *exporter) myEventsExcel(rows []MyEventReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "My Events"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Name", "Interest", "Location", "Start Date", "End Date", "Participants", "Status"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Interest)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Location)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.StartDate.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.EndDate.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Participants)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.Status)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) myEventsPDF(rows []MyEventReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "My Events")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Name", "Interest", "Location", "Start", "End", "Participants", "Status"}
	widths := []float64{60, 35, 50, 35, 35, 30, 25}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, r.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Interest, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.StartDate.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.EndDate.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, strconv.Itoa(r.Participants), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
