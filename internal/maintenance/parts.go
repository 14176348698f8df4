package maintenance

import (
	"fmt"
	"math"
	"time"

	"github.com/emredev/auto-service-crm/internal/models"
)

// Part lifetime statuses.
const (
	PartActive   = "active"
	PartWarning  = "warning"
	PartCritical = "critical"
	PartExpired  = "expired"
)

// DaysLeft returns the number of calendar days until the expiration
// date, rounding down. Note the asymmetry with DaysUntil: the vehicle
// scan rounds up, the parts scan rounds down.
func DaysLeft(expiration, today time.Time) int {
	return int(math.Floor(expiration.Sub(today).Hours() / 24))
}

// ClassifyPart maps remaining lifetime days to a part status.
func ClassifyPart(daysLeft int) string {
	switch {
	case daysLeft <= 0:
		return PartExpired
	case daysLeft <= 5:
		return PartCritical
	case daysLeft <= 60:
		return PartWarning
	default:
		return PartActive
	}
}

// PartNeedsAlert reports whether a part status triggers an external
// alert. Expired parts are past alerting.
func PartNeedsAlert(status string) bool {
	return status == PartWarning || status == PartCritical
}

// BuildPartView computes the derived lifetime fields for a part.
func BuildPartView(part models.Part, today time.Time) models.PartView {
	expiration := part.ExpirationDate()
	daysLeft := DaysLeft(expiration, today)
	return models.PartView{
		Part:           part,
		ExpirationDate: expiration,
		DaysLeft:       daysLeft,
		Status:         ClassifyPart(daysLeft),
	}
}

// PartAlertMessage builds the external-channel alert text for a part.
func PartAlertMessage(view models.PartView) string {
	return fmt.Sprintf("Parca %s (%s) icin kalan sure: %d gun. Durum: %s",
		view.Name, view.Code, view.DaysLeft, view.Status)
}
