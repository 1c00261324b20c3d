package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/cancel_reservation"
	createCustomerHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/create_customer"
	createDayOffHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/create_day_off"
	createReservationHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/create_reservation"
	deleteDayOffHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/delete_day_off"
	getAvailableDatesHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/get_available_slots"
	getCustomerReservationsHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/get_customer_reservations"
	getCustomerTicketsHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/get_customer_tickets"
	getReservationHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/get_reservation"
	importCustomersHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/import_customers"
	listTicketsHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/list_tickets"
	registerTicketHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/register_ticket"
	updateCustomerHandler "github.com/jw-park/petkinder-backend/internal/api/handlers/update_customer"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	"github.com/jw-park/petkinder-backend/internal/availability"
	"github.com/jw-park/petkinder-backend/internal/config"
	"github.com/jw-park/petkinder-backend/internal/infra/cache"
	calendarRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/calendar"
	customerRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customer"
	customerticketRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/customerticket"
	dailyreservationRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/dailyreservation"
	kindergartenRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/kindergarten"
	reservationRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/reservation"
	ticketRepo "github.com/jw-park/petkinder-backend/internal/infra/storage/ticket"
	messageServiceClient "github.com/jw-park/petkinder-backend/internal/integrations/messageservice"
	"github.com/jw-park/petkinder-backend/internal/queue"
	customersService "github.com/jw-park/petkinder-backend/internal/service/customers"
	dayoffsService "github.com/jw-park/petkinder-backend/internal/service/dayoffs"
	reservationsService "github.com/jw-park/petkinder-backend/internal/service/reservations"
	ticketsService "github.com/jw-park/petkinder-backend/internal/service/tickets"
	cancelReservationUC "github.com/jw-park/petkinder-backend/internal/usecase/cancel_reservation"
	createReservationUC "github.com/jw-park/petkinder-backend/internal/usecase/create_reservation"
	getAvailableDatesUC "github.com/jw-park/petkinder-backend/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/jw-park/petkinder-backend/internal/usecase/get_available_slots"
	"github.com/jw-park/petkinder-backend/pkg/dbmetrics"
	"github.com/jw-park/petkinder-backend/pkg/logger"
	"github.com/jw-park/petkinder-backend/pkg/metrics"
	"github.com/jw-park/petkinder-backend/pkg/simpletxmanager"
	"github.com/jw-park/petkinder-backend/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting petkinder-backend...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatal("Failed to connect to rabbitmq: %v", err)
	}
	defer amqpConn.Close()
	log.Info("Successfully connected to rabbitmq")

	msgClient := messageServiceClient.NewClient(
		cfg.Messages.URL,
		cfg.Messages.APIKey,
		time.Duration(cfg.Messages.Timeout)*time.Second,
		log,
	)
	log.Info("Message service client initialized (url=%s timeout=%ds)", cfg.Messages.URL, cfg.Messages.Timeout)

	var (
		kindergartenRepository     *kindergartenRepo.Repository
		customerRepository         *customerRepo.Repository
		ticketRepository           *ticketRepo.Repository
		customerTicketRepository   *customerticketRepo.Repository
		reservationRepository      *reservationRepo.Repository
		dailyReservationRepository *dailyreservationRepo.Repository
		calendarRepository         *calendarRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		kindergartenRepository = kindergartenRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		ticketRepository = ticketRepo.NewRepository(wrappedDB)
		customerTicketRepository = customerticketRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		dailyReservationRepository = dailyreservationRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		kindergartenRepository = kindergartenRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		ticketRepository = ticketRepo.NewRepository(db)
		customerTicketRepository = customerticketRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		dailyReservationRepository = dailyreservationRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Holiday lookups go through redis; day-offs and capacity counters are
	// tenant-local and always hit the database.
	holidayCache := cache.NewHolidayCache(
		redisClient,
		calendarRepository,
		time.Duration(cfg.Redis.HolidayTTL)*time.Second,
		log,
	)
	availabilityCalc := availability.NewCalculator(dailyReservationRepository, calendarRepository, holidayCache)

	eventPublisher, err := queue.NewPublisher(amqpConn, log)
	if err != nil {
		log.Fatal("Failed to initialize event publisher: %v", err)
	}
	defer eventPublisher.Close()

	notifier := queue.NewNotifier(amqpConn, customerRepository, customerTicketRepository, msgClient, log)
	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()
	go func() {
		if err := notifier.Run(notifierCtx); err != nil {
			log.Error("Notifier stopped: %v", err)
		}
	}()

	customerSvc := customersService.NewService(customerRepository, txMgr, log)
	ticketSvc := ticketsService.NewService(ticketRepository, customerRepository, customerTicketRepository, txMgr, log)
	reservationSvc := reservationsService.NewService(reservationRepository, log)
	dayOffSvc := dayoffsService.NewService(calendarRepository, txMgr, log)

	createReservationUseCase := createReservationUC.NewUseCase(
		kindergartenRepository,
		customerRepository,
		ticketRepository,
		customerTicketRepository,
		reservationRepository,
		dailyReservationRepository,
		availabilityCalc,
		eventPublisher,
		txMgr,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		customerTicketRepository,
		dailyReservationRepository,
		txMgr,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		kindergartenRepository,
		ticketRepository,
		customerTicketRepository,
		availabilityCalc,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(kindergartenRepository, log)

	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getCustomerReservations := getCustomerReservationsHandler.NewHandler(reservationSvc, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createCustomer := createCustomerHandler.NewHandler(customerSvc, log)
	updateCustomer := updateCustomerHandler.NewHandler(customerSvc, log)
	importCustomers := importCustomersHandler.NewHandler(customerSvc, log)
	registerTicket := registerTicketHandler.NewHandler(ticketSvc, log)
	getCustomerTickets := getCustomerTicketsHandler.NewHandler(ticketSvc, log)
	listTickets := listTicketsHandler.NewHandler(ticketSvc, log)
	createDayOff := createDayOffHandler.NewHandler(dayOffSvc, log)
	deleteDayOff := deleteDayOffHandler.NewHandler(dayOffSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Every API route carries the kindergarten identity in the JWT.
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.NewAuth([]byte(cfg.Auth.JWTSecret), log))

	// --- Customers ---
	api.HandleFunc("/customers", createCustomer.Handle).Methods(http.MethodPost)
	api.HandleFunc("/customers/import", importCustomers.Handle).Methods(http.MethodPost)
	api.HandleFunc("/customers/{customerId}", updateCustomer.Handle).Methods(http.MethodPut)

	// --- Tickets ---
	api.HandleFunc("/tickets", listTickets.Handle).Methods(http.MethodGet)
	api.HandleFunc("/customers/{customerId}/tickets", registerTicket.Handle).Methods(http.MethodPost)
	api.HandleFunc("/customers/{customerId}/tickets", getCustomerTickets.Handle).Methods(http.MethodGet)

	// --- Availability ---
	api.HandleFunc("/tickets/{ticketId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-times", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Reservations ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/customers/{customerId}/reservations", getCustomerReservations.Handle).Methods(http.MethodGet)

	// --- Day-offs ---
	api.HandleFunc("/day-offs", createDayOff.Handle).Methods(http.MethodPost)
	api.HandleFunc("/day-offs/{dayOffId}", deleteDayOff.Handle).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopNotifier()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
