package main

import (
	"context"
	"net/http"
	"time"

	"schedly/cmd/internal/config"
	"schedly/cmd/internal/domain/sqlite"
	"schedly/cmd/internal/domain/sqlite/repository"
	"schedly/cmd/internal/notify"
	"schedly/cmd/internal/routes"
	"schedly/cmd/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, reading environment directly")
	}
	cfg := config.Load()

	validate := validator.New()

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Getting repositories
	registrantRepo := repository.NewRegistrantRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	dispatcher := newDispatcher(cfg)

	// Getting services
	registrantService := service.NewRegistrantService(registrantRepo, validate, dispatcher)
	apptService := service.NewAppointmentService(apptRepo, registrantRepo, validate, dispatcher)
	employeeService := service.NewEmployeeService(employeeRepo, validate)
	dashboardService := service.NewDashboardService(apptRepo, registrantRepo, employeeRepo, newRedisClient(cfg))
	authService := service.NewAuthService(cfg.AdminUser, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenTTL, validate)

	// Getting routes
	registrantRoutes := routes.NewRegistrantDefault(registrantService)
	apptRoutes := routes.NewAppointmentDefault(apptService)
	employeeRoutes := routes.NewEmployeeDefault(employeeService)
	dashboardRoutes := routes.NewDashboardDefault(dashboardService)
	authRoutes := routes.NewAuthDefault(authService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Appointments
	e.GET("/api/v1/appointments", apptRoutes.ListAppointments)
	e.POST("/api/v1/appointments", apptRoutes.CreateAppointment)
	e.GET("/api/v1/appointments/:id", apptRoutes.GetAppointment)
	e.PATCH("/api/v1/appointments/:id", apptRoutes.UpdateAppointment)
	e.DELETE("/api/v1/appointments/:id", apptRoutes.DeleteAppointment)

	// Registrants
	e.GET("/api/v1/registrants", registrantRoutes.ListRegistrants)
	e.POST("/api/v1/registrants", registrantRoutes.CreateRegistrant)
	e.GET("/api/v1/registrants/:id", registrantRoutes.GetRegistrant)
	e.PATCH("/api/v1/registrants/:id", registrantRoutes.UpdateRegistrant)
	e.DELETE("/api/v1/registrants/:id", registrantRoutes.DeleteRegistrant)

	// Employees
	e.GET("/api/v1/employees", employeeRoutes.ListEmployees)
	e.POST("/api/v1/employees", employeeRoutes.CreateEmployee)
	e.GET("/api/v1/employees/:id", employeeRoutes.GetEmployee)
	e.PATCH("/api/v1/employees/:id", employeeRoutes.UpdateEmployee)
	e.DELETE("/api/v1/employees/:id", employeeRoutes.DeleteEmployee)

	// Auth + dashboard
	e.POST("/api/v1/auth/login", authRoutes.Login)
	e.GET("/api/v1/dashboard/summary", dashboardRoutes.GetSummary)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	err = e.Start(":" + cfg.Port)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

// newDispatcher picks the notification path: a broker-backed publisher when
// AMQP_URL is set, otherwise the in-process mailer. Without SMTP settings
// deliveries are logged instead of sent.
func newDispatcher(cfg config.Config) notify.Dispatcher {
	var sender notify.Sender = notify.LogSender{}
	if cfg.SMTPHost != "" {
		sender = &notify.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
		}
	}

	if cfg.AMQPURL != "" {
		dispatcher, err := notify.DialAMQP(cfg.AMQPURL)
		if err != nil {
			log.Fatal("failed to connect to broker", err)
		}
		go notify.StartEmailConsumer(cfg.AMQPURL, sender)
		return dispatcher
	}
	return notify.NewMailer(sender, 256)
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("redis unreachable, dashboard cache disabled: %v", err)
		return nil
	}
	return client
}
