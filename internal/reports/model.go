package reports

import "time"

// Supported export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ParticipantReportRow is one participant line in an event export.
type ParticipantReportRow struct {
	Name      string
	Email     string
	About     string
	Interests string
	Status    string
}

// MyEventReportRow is one line in the viewer's events export.
type MyEventReportRow struct {
	Name         string
	Interest     string
	Location     string
	StartDate    time.Time
	EndDate      time.Time
	Participants int
	Status       string
}
