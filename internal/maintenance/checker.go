package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/emredev/auto-service-crm/internal/models"
	log "github.com/sirupsen/logrus"
)

// VehicleStore is the slice of the vehicle collection the scan needs.
type VehicleStore interface {
	FindVehiclesWithMaintenanceDate(ctx context.Context) ([]models.Vehicle, error)
	UpdateMaintenanceStatus(ctx context.Context, id string, status models.MaintenanceStatus) error
}

// CustomerStore resolves the owning customer for the SMS reminder.
type CustomerStore interface {
	FindCustomerByID(ctx context.Context, id string) (*models.Customer, error)
}

// PartStore lists part records for the expiration scan.
type PartStore interface {
	FindParts(ctx context.Context) ([]models.Part, error)
}

// UserStore resolves the notification fan-out recipients.
type UserStore interface {
	FindActiveUserIDsByRole(ctx context.Context, roles []models.Role) ([]string, error)
}

// NotificationStore persists in-app notification records.
type NotificationStore interface {
	InsertNotification(ctx context.Context, notification models.Notification) error
}

// ReminderSender sends the customer-facing SMS reminder.
type ReminderSender interface {
	SendMaintenanceReminder(phoneNumber, vehicleInfo string, daysUntil int) bool
}

// AlertPublisher pushes parts alerts to the external channel.
type AlertPublisher interface {
	Publish(text string)
}

// Checker runs the daily scans. Every side effect is best effort: a
// failing item is logged and skipped, only a failed batch read aborts
// a run.
type Checker struct {
	Vehicles      VehicleStore
	Customers     CustomerStore
	Parts         PartStore
	Users         UserStore
	Notifications NotificationStore
	Sms           ReminderSender
	Alerts        AlertPublisher
	Now           func() time.Time
}

func (c *Checker) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// CheckMaintenanceDue scans every vehicle with a maintenance date,
// persists status changes and dispatches reminders.
func (c *Checker) CheckMaintenanceDue(ctx context.Context) error {
	vehicles, err := c.Vehicles.FindVehiclesWithMaintenanceDate(ctx)
	if err != nil {
		return fmt.Errorf("fetch vehicles: %w", err)
	}
	if len(vehicles) == 0 {
		log.Info("No vehicles with maintenance dates found")
		return nil
	}

	today := c.now()
	for i := range vehicles {
		c.checkVehicle(ctx, &vehicles[i], today)
	}
	return nil
}

func (c *Checker) checkVehicle(ctx context.Context, vehicle *models.Vehicle, today time.Time) {
	if vehicle.NextMaintenanceDate == nil {
		// Not an error: vehicles without a date are simply outside the scan.
		return
	}

	daysUntil := DaysUntil(*vehicle.NextMaintenanceDate, today)
	decision := Classify(daysUntil)

	if vehicle.MaintenanceStatus != decision.Status {
		if err := c.Vehicles.UpdateMaintenanceStatus(ctx, vehicle.ID.Hex(), decision.Status); err != nil {
			log.WithError(err).Errorf("Failed to update maintenance status for %s", vehicle.LicensePlate)
		} else {
			log.Infof("Updated %s status to %s", vehicle.LicensePlate, decision.Status)
		}
	}

	if !decision.Notify {
		return
	}

	message := AlertMessage(vehicle.Info(), daysUntil)

	userIDs, err := c.Users.FindActiveUserIDsByRole(ctx, []models.Role{models.RoleAdmin, models.RoleManager})
	if err != nil {
		log.WithError(err).Error("Failed to look up notification recipients")
		userIDs = nil
	}
	if len(userIDs) > 0 {
		for _, userID := range userIDs {
			notification := models.Notification{
				UserID:  userID,
				Title:   "Maintenance Alert",
				Message: message,
				Type:    "service",
			}
			if err := c.Notifications.InsertNotification(ctx, notification); err != nil {
				log.WithError(err).Errorf("Failed to create notification for user %s", userID)
			}
		}
		log.Infof("Sent notifications for %s to %d users", vehicle.LicensePlate, len(userIDs))
	}

	// SMS only for critical vehicles whose owner has a phone on file.
	if decision.Status != models.MaintenanceCritical {
		return
	}
	customer, err := c.Customers.FindCustomerByID(ctx, vehicle.CustomerID)
	if err != nil {
		log.WithError(err).Errorf("Failed to load customer for %s", vehicle.LicensePlate)
		return
	}
	if customer.Phone == "" {
		return
	}
	if c.Sms.SendMaintenanceReminder(customer.Phone, vehicle.Info(), daysUntil) {
		log.Infof("SMS sent successfully to %s for %s", customer.Phone, vehicle.LicensePlate)
	} else {
		log.Errorf("Failed to send SMS to %s for %s", customer.Phone, vehicle.LicensePlate)
	}
}

// CheckPartsExpiration scans every part and alerts the external channel
// for those in the warning or critical band. Alerts repeat every run;
// the scan keeps no state between runs.
func (c *Checker) CheckPartsExpiration(ctx context.Context) error {
	parts, err := c.Parts.FindParts(ctx)
	if err != nil {
		return fmt.Errorf("fetch parts: %w", err)
	}

	today := c.now()
	for _, part := range parts {
		view := BuildPartView(part, today)
		if PartNeedsAlert(view.Status) {
			c.Alerts.Publish(PartAlertMessage(view))
		}
	}
	return nil
}
