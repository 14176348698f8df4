package maintenance

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/emredev/auto-service-crm/internal/models"
)

func TestDaysLeft(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		expected   int
	}{
		{"same instant", base, 0},
		{"half a day left rounds down", base.Add(12 * time.Hour), 0},
		{"three and a half days rounds down", base.AddDate(0, 0, 3).Add(12 * time.Hour), 3},
		{"half a day past rounds down", base.Add(-12 * time.Hour), -1},
		{"exactly three days", base.AddDate(0, 0, 3), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysLeft(tt.expiration, base); got != tt.expected {
				t.Errorf("DaysLeft(%v, %v) = %d, want %d", tt.expiration, base, got, tt.expected)
			}
		})
	}
}

func TestClassifyPart(t *testing.T) {
	tests := []struct {
		daysLeft int
		status   string
	}{
		{-5, PartExpired},
		{0, PartExpired},
		{1, PartCritical},
		{5, PartCritical},
		{6, PartWarning},
		{60, PartWarning},
		{61, PartActive},
		{365, PartActive},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("daysLeft=%d", tt.daysLeft), func(t *testing.T) {
			if got := ClassifyPart(tt.daysLeft); got != tt.status {
				t.Errorf("ClassifyPart(%d) = %s, want %s", tt.daysLeft, got, tt.status)
			}
		})
	}
}

func TestPartNeedsAlert(t *testing.T) {
	if PartNeedsAlert(PartExpired) {
		t.Error("expired parts should not trigger alerts")
	}
	if !PartNeedsAlert(PartCritical) {
		t.Error("critical parts should trigger alerts")
	}
	if !PartNeedsAlert(PartWarning) {
		t.Error("warning parts should trigger alerts")
	}
	if PartNeedsAlert(PartActive) {
		t.Error("active parts should not trigger alerts")
	}
}

func TestBuildPartView(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	part := models.Part{
		Name:         "Yag Filtresi",
		Code:         "YF-204",
		GivenDate:    today.AddDate(0, 0, -362),
		LifetimeDays: 365,
	}

	view := BuildPartView(part, today)

	if view.DaysLeft != 3 {
		t.Errorf("DaysLeft = %d, want 3", view.DaysLeft)
	}
	if view.Status != PartCritical {
		t.Errorf("Status = %s, want %s", view.Status, PartCritical)
	}
	wantExp := part.GivenDate.AddDate(0, 0, 365)
	if !view.ExpirationDate.Equal(wantExp) {
		t.Errorf("ExpirationDate = %v, want %v", view.ExpirationDate, wantExp)
	}

	msg := PartAlertMessage(view)
	if !strings.Contains(msg, "Yag Filtresi") || !strings.Contains(msg, "3 gun") {
		t.Errorf("alert message missing part name or days left: %q", msg)
	}
	if !strings.Contains(msg, PartCritical) {
		t.Errorf("alert message missing status: %q", msg)
	}
}

func TestBuildPartView_Expired(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	part := models.Part{
		Name:         "Balata",
		GivenDate:    today.AddDate(0, 0, -400),
		LifetimeDays: 365,
	}

	view := BuildPartView(part, today)

	if view.Status != PartExpired {
		t.Errorf("Status = %s, want %s", view.Status, PartExpired)
	}
	if PartNeedsAlert(view.Status) {
		t.Error("expired part must not be alerted")
	}
}
