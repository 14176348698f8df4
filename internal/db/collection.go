package db

import (
	"context"
	"time"

	"github.com/emredev/auto-service-crm/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// CustomerCollection defines the interface for customer data operations.
type CustomerCollection interface {
	InsertCustomer(ctx context.Context, customer models.Customer) error
	FindCustomers(ctx context.Context, filter bson.M, page, limit int64) ([]models.Customer, int64, error)
	FindCustomersWithVehicles(ctx context.Context, filter bson.M) ([]models.CustomerWithVehicles, error)
	FindCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	SearchCustomers(ctx context.Context, query string, filter bson.M) ([]models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, customer models.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
	DeleteCustomers(ctx context.Context, ids []string) (int64, error)
}

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) error
	FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	FindVehiclesByCustomer(ctx context.Context, customerID string) ([]models.Vehicle, error)
	FindVehiclesWithMaintenanceDate(ctx context.Context) ([]models.Vehicle, error)
	FindMaintenanceDue(ctx context.Context, today time.Time) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	UpdateMaintenanceStatus(ctx context.Context, id string, status models.MaintenanceStatus) error
	DeleteVehicle(ctx context.Context, id string) error
}

// SaleCollection defines the interface for sale data operations.
type SaleCollection interface {
	InsertSale(ctx context.Context, sale models.Sale) error
	FindSales(ctx context.Context, filter bson.M) ([]models.Sale, error)
	FindSaleByID(ctx context.Context, id string) (*models.Sale, error)
	UpdateSale(ctx context.Context, id string, sale models.Sale) error
	DeleteSale(ctx context.Context, id string) error
}

// WorkOrderCollection defines the interface for work order data operations.
type WorkOrderCollection interface {
	InsertWorkOrder(ctx context.Context, order models.WorkOrder) error
	FindWorkOrders(ctx context.Context, filter bson.M) ([]models.WorkOrder, error)
	FindWorkOrderByID(ctx context.Context, id string) (*models.WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, id string, order models.WorkOrder) error
	DeleteWorkOrder(ctx context.Context, id string) error
}

// PartCollection defines the interface for consumable part operations.
type PartCollection interface {
	InsertPart(ctx context.Context, part models.Part) error
	FindParts(ctx context.Context) ([]models.Part, error)
	FindPartByID(ctx context.Context, id string) (*models.Part, error)
	UpdatePart(ctx context.Context, id string, part models.Part) error
	DeletePart(ctx context.Context, id string) error
}

// NotificationCollection defines the interface for in-app notifications.
type NotificationCollection interface {
	InsertNotification(ctx context.Context, notification models.Notification) error
	FindNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	FindUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id, userID string) error
}

// UserCollection defines the interface for user database operations.
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUsers(ctx context.Context, filter bson.M) ([]models.User, error)
	FindActiveUserIDsByRole(ctx context.Context, roles []models.Role) ([]string, error)
	UpdateUser(ctx context.Context, id string, user models.User) error
	SetUserActive(ctx context.Context, id string, active bool) error
	SetUserRole(ctx context.Context, id string, role models.Role) error
	DeleteUser(ctx context.Context, id string) error
	UpdateLastLogin(ctx context.Context, id string) error
}
