package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// JobType tags a report job message.
type JobType string

const (
	// JobExportMonthly asks the worker to write the Excel report for a month.
	JobExportMonthly JobType = "export_monthly"
	// JobSummaryRefresh asks the worker to recompute and push the dashboard
	// summary to the configured spreadsheet.
	JobSummaryRefresh JobType = "summary_refresh"
)

// ReportJob is the message the API publishes and the worker consumes.
// It carries only the target month; the worker loads the data itself.
type ReportJob struct {
	Type      JobType   `json:"type"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportJob(jobType JobType, year, month int) *ReportJob {
	return &ReportJob{
		Type:      jobType,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *ReportJob) Validate() error {
	switch m.Type {
	case JobExportMonthly, JobSummaryRefresh:
	default:
		return fmt.Errorf("unknown job type: %s", m.Type)
	}
	if m.Year < 2000 || m.Year > 2200 {
		return fmt.Errorf("year out of range: %d", m.Year)
	}
	if m.Month < 1 || m.Month > 12 {
		return fmt.Errorf("month out of range: %d", m.Month)
	}
	return nil
}

func (m *ReportJob) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportJobFromJSON(data []byte) (*ReportJob, error) {
	var msg ReportJob
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
