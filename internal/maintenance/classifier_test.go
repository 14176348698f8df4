package maintenance

import (
	"fmt"
	"testing"
	"time"

	"github.com/emredev/auto-service-crm/internal/models"
)

func TestDaysUntil(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      time.Time
		expected int
	}{
		{"same instant", base, 0},
		{"later today rounds up", base.Add(12 * time.Hour), 1},
		{"exactly 30 days", base.AddDate(0, 0, 30), 30},
		{"30 and a half days rounds up", base.AddDate(0, 0, 30).Add(12 * time.Hour), 31},
		{"three days overdue", base.AddDate(0, 0, -3), -3},
		{"half a day overdue rounds up to zero", base.Add(-12 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.due, base); got != tt.expected {
				t.Errorf("DaysUntil(%v, %v) = %d, want %d", tt.due, base, got, tt.expected)
			}
		})
	}
}

func TestClassify_Buckets(t *testing.T) {
	// Overdue and up to 5 days out: critical, always notify.
	for daysUntil := -10; daysUntil <= 5; daysUntil++ {
		d := Classify(daysUntil)
		if d.Status != models.MaintenanceCritical {
			t.Errorf("Classify(%d).Status = %s, want critical", daysUntil, d.Status)
		}
		if !d.Notify {
			t.Errorf("Classify(%d).Notify = false, want true", daysUntil)
		}
	}

	// Warning band: notify only at exactly 30 days.
	for daysUntil := 6; daysUntil <= 60; daysUntil++ {
		d := Classify(daysUntil)
		if d.Status != models.MaintenanceWarning {
			t.Errorf("Classify(%d).Status = %s, want warning", daysUntil, d.Status)
		}
		wantNotify := daysUntil == 30
		if d.Notify != wantNotify {
			t.Errorf("Classify(%d).Notify = %v, want %v", daysUntil, d.Notify, wantNotify)
		}
	}

	// Beyond 60 days: ok, never notify.
	for daysUntil := 61; daysUntil <= 120; daysUntil++ {
		d := Classify(daysUntil)
		if d.Status != models.MaintenanceOK {
			t.Errorf("Classify(%d).Status = %s, want ok", daysUntil, d.Status)
		}
		if d.Notify {
			t.Errorf("Classify(%d).Notify = true, want false", daysUntil)
		}
	}
}

func TestClassify_BoundaryDays(t *testing.T) {
	tests := []struct {
		daysUntil int
		status    models.MaintenanceStatus
		notify    bool
	}{
		{0, models.MaintenanceCritical, true},
		{1, models.MaintenanceCritical, true},
		{5, models.MaintenanceCritical, true},
		{6, models.MaintenanceWarning, false},
		{29, models.MaintenanceWarning, false},
		{30, models.MaintenanceWarning, true},
		{31, models.MaintenanceWarning, false},
		{60, models.MaintenanceWarning, false},
		{61, models.MaintenanceOK, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("daysUntil=%d", tt.daysUntil), func(t *testing.T) {
			d := Classify(tt.daysUntil)
			if d.Status != tt.status || d.Notify != tt.notify {
				t.Errorf("Classify(%d) = {%s %v}, want {%s %v}",
					tt.daysUntil, d.Status, d.Notify, tt.status, tt.notify)
			}
		})
	}
}

func TestAlertMessage(t *testing.T) {
	info := "Renault Clio (34 ABC 123)"

	overdue := AlertMessage(info, -3)
	if overdue != "OVERDUE: Renault Clio (34 ABC 123) maintenance is 3 days overdue!" {
		t.Errorf("unexpected overdue message: %q", overdue)
	}

	urgent := AlertMessage(info, 4)
	if urgent != "URGENT: Renault Clio (34 ABC 123) requires maintenance in 4 days!" {
		t.Errorf("unexpected urgent message: %q", urgent)
	}

	warning := AlertMessage(info, 30)
	if warning != "Renault Clio (34 ABC 123) maintenance due in 30 days" {
		t.Errorf("unexpected warning message: %q", warning)
	}
}
