package amqp

import (
	"testing"
)

func TestReportJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		job     *ReportJob
		wantErr bool
	}{
		{"valid export", NewReportJob(JobExportMonthly, 2026, 1), false},
		{"valid refresh", NewReportJob(JobSummaryRefresh, 2026, 12), false},
		{"unknown type", NewReportJob("resync_all", 2026, 1), true},
		{"month zero", NewReportJob(JobExportMonthly, 2026, 0), true},
		{"month thirteen", NewReportJob(JobExportMonthly, 2026, 13), true},
		{"year out of range", NewReportJob(JobExportMonthly, 1900, 6), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReportJobRoundTrip(t *testing.T) {
	job := NewReportJob(JobExportMonthly, 2026, 7)

	body, err := job.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := ReportJobFromJSON(body)
	if err != nil {
		t.Fatalf("ReportJobFromJSON: %v", err)
	}
	if got.Type != JobExportMonthly || got.Year != 2026 || got.Month != 7 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestReportJobFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ReportJobFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
