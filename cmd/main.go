package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/emredev/auto-service-crm/internal/auth"
	"github.com/emredev/auto-service-crm/internal/db"
	"github.com/emredev/auto-service-crm/internal/handlers"
	"github.com/emredev/auto-service-crm/internal/maintenance"
	"github.com/emredev/auto-service-crm/internal/middleware"
	"github.com/emredev/auto-service-crm/internal/models"
	"github.com/emredev/auto-service-crm/internal/notify"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(log.DebugLevel)
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Info("Connected to MongoDB")

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "auto_service_crm"
	}
	store := db.NewStore(client.Database(dbName))

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	mailer := notify.NewMailerFromEnv()
	smsService := notify.NewSmsService(notify.NewSmsSenderFromEnv())
	alertPublisher := notify.NewAlertPublisherFromEnv()

	checker := &maintenance.Checker{
		Vehicles:      store.Vehicles,
		Customers:     store.Customers,
		Parts:         store.Parts,
		Users:         store.Users,
		Notifications: store.Notifications,
		Sms:           smsService,
		Alerts:        alertPublisher,
	}
	scheduler := maintenance.NewScheduler(checker)
	scheduler.Start()

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	authHandler := handlers.NewAuthHandler(authService, store.Users, mailer)
	customerHandler := handlers.NewCustomerHandler(store.Customers, store.Vehicles)
	vehicleHandler := handlers.NewVehicleHandler(store.Vehicles, store.Customers)
	saleHandler := handlers.NewSaleHandler(store.Sales, store.Customers, store.Vehicles, smsService)
	workOrderHandler := handlers.NewWorkOrderHandler(store.WorkOrders, store.Vehicles, store.Customers, mailer)
	partHandler := handlers.NewPartHandler(store.Parts)
	notificationHandler := handlers.NewNotificationHandler(store.Notifications)
	userHandler := handlers.NewUserHandler(store.Users)

	router := mux.NewRouter()
	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", authHandler.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/profile", authHandler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/auth/profile", authHandler.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/auth/change-password", authHandler.ChangePassword).Methods(http.MethodPost)

	api.HandleFunc("/customers", customerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/customers", customerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/customers/with-vehicles", customerHandler.ListWithVehicles).Methods(http.MethodGet)
	api.Handle("/customers/bulk-delete",
		authMiddleware.RequirePermission("delete_customer")(http.HandlerFunc(customerHandler.BulkDelete))).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", customerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", customerHandler.Update).Methods(http.MethodPut)
	api.Handle("/customers/{id}",
		authMiddleware.RequirePermission("delete_customer")(http.HandlerFunc(customerHandler.Delete))).Methods(http.MethodDelete)

	api.HandleFunc("/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/maintenance-due", vehicleHandler.MaintenanceDue).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/customer/{customerId}", vehicleHandler.ListByCustomer).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}", vehicleHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}", vehicleHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/vehicles/{id}/maintenance-status", vehicleHandler.UpdateMaintenanceStatus).Methods(http.MethodPatch)
	api.Handle("/vehicles/{id}",
		authMiddleware.RequirePermission("delete_vehicle")(http.HandlerFunc(vehicleHandler.Delete))).Methods(http.MethodDelete)

	api.HandleFunc("/sales", saleHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/sales", saleHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sales/{id}", saleHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sales/{id}", saleHandler.Update).Methods(http.MethodPut)
	api.Handle("/sales/{id}",
		authMiddleware.RequireRole(models.RoleManager)(http.HandlerFunc(saleHandler.Delete))).Methods(http.MethodDelete)

	api.HandleFunc("/work-orders", workOrderHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/work-orders", workOrderHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/work-orders/stats", workOrderHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/work-orders/{id}", workOrderHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/work-orders/{id}", workOrderHandler.Update).Methods(http.MethodPut)
	api.Handle("/work-orders/{id}",
		authMiddleware.RequireRole(models.RoleManager)(http.HandlerFunc(workOrderHandler.Delete))).Methods(http.MethodDelete)

	api.HandleFunc("/parts", partHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/parts", partHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/parts/{id}", partHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/parts/{id}", partHandler.Update).Methods(http.MethodPut)
	api.Handle("/parts/{id}",
		authMiddleware.RequireRole(models.RoleManager)(http.HandlerFunc(partHandler.Delete))).Methods(http.MethodDelete)

	api.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/unread", notificationHandler.Unread).Methods(http.MethodGet)
	api.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods(http.MethodPost)
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkRead).Methods(http.MethodPost)
	api.HandleFunc("/notifications/{id}", notificationHandler.Delete).Methods(http.MethodDelete)

	admin := api.PathPrefix("/users").Subrouter()
	admin.Use(authMiddleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("", userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/{id}/active", userHandler.SetActive).Methods(http.MethodPatch)
	admin.HandleFunc("/{id}/role", userHandler.SetRole).Methods(http.MethodPatch)
	admin.HandleFunc("/{id}", userHandler.Delete).Methods(http.MethodDelete)

	handler := rateLimiter.RateLimit(300, 60)(authMiddleware.Authenticate(router))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Infof("HTTP server listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server shutdown error: %v", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Errorf("Mongo disconnect error: %v", err)
	}
}
