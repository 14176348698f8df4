// Package maintenance implements the daily vehicle maintenance and parts
// expiration scans: day counting, status buckets and the notification
// decisions attached to them.
package maintenance

import (
	"fmt"
	"math"
	"time"

	"github.com/emredev/auto-service-crm/internal/models"
)

// warningNotifyDay is the single day in the warning band on which a
// reminder goes out.
const warningNotifyDay = 30

// DaysUntil returns the number of calendar days from today until the due
// date. Fractional days round up, so a due date later today counts as 1.
func DaysUntil(due, today time.Time) int {
	return int(math.Ceil(due.Sub(today).Hours() / 24))
}

// Decision is the outcome of classifying one vehicle.
type Decision struct {
	Status models.MaintenanceStatus
	Notify bool
}

// Classify maps a day count to a maintenance status bucket and the
// notify flag. Evaluated in priority order, first match wins:
// overdue and anything within 5 days is critical, up to 60 days is
// warning (reminded only on day 30), beyond that ok.
func Classify(daysUntil int) Decision {
	switch {
	case daysUntil <= 0:
		return Decision{Status: models.MaintenanceCritical, Notify: true}
	case daysUntil <= 5:
		return Decision{Status: models.MaintenanceCritical, Notify: true}
	case daysUntil <= 60:
		return Decision{Status: models.MaintenanceWarning, Notify: daysUntil == warningNotifyDay}
	default:
		return Decision{Status: models.MaintenanceOK, Notify: false}
	}
}

// AlertMessage builds the in-app notification text for a vehicle.
func AlertMessage(vehicleInfo string, daysUntil int) string {
	switch {
	case daysUntil <= 0:
		return fmt.Sprintf("OVERDUE: %s maintenance is %d days overdue!", vehicleInfo, -daysUntil)
	case daysUntil <= 5:
		return fmt.Sprintf("URGENT: %s requires maintenance in %d days!", vehicleInfo, daysUntil)
	default:
		return fmt.Sprintf("%s maintenance due in %d days", vehicleInfo, daysUntil)
	}
}
