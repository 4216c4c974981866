package cmd

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/engagesphere/engagesphere-backend/app/controller"
	"github.com/engagesphere/engagesphere-backend/app/gateway"
	"github.com/engagesphere/engagesphere-backend/app/repository"
	"github.com/engagesphere/engagesphere-backend/app/service"
	"github.com/engagesphere/engagesphere-backend/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the Echo HTTP server exposing the payment, user, contact, plan and receipt APIs.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type controllers struct {
	payment *controller.PaymentController
	user    *controller.UserController
	contact *controller.ContactController
	plan    *controller.PlanController
	receipt *controller.ReceiptController
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, ctrls, cleanup := mustCreateControllers()
	defer cleanup()

	e := setupHTTPServer(cfg, ctrls)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(cfg *config.Config, ctrls *controllers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.App.FrontendOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.GET("/health", ctrls.payment.Health)

	payment := e.Group("/payment")
	payment.POST("/create", ctrls.payment.CreateOrder)
	payment.POST("/capture", ctrls.payment.CaptureOrder)
	payment.POST("/get", ctrls.payment.GetPayment)
	payment.GET("/all", ctrls.payment.ListAllPayments)
	payment.GET("/stats", ctrls.payment.GetPaymentStats)
	payment.GET("/user/:userId", ctrls.payment.ListPaymentsByUser)
	payment.POST("/status", ctrls.payment.UpdatePaymentStatus)
	payment.DELETE("/:paymentId", ctrls.payment.DeletePayment)

	user := e.Group("/user")
	user.POST("", ctrls.user.CreateUser)
	user.GET("/all", ctrls.user.ListUsers)
	user.GET("/:userId", ctrls.user.GetUser)

	contact := e.Group("/contact")
	contact.POST("", ctrls.contact.CreateContact)
	contact.GET("/all", ctrls.contact.ListContacts)

	plan := e.Group("/plan")
	plan.GET("/all", ctrls.plan.ListPlans)
	plan.GET("/:planId", ctrls.plan.GetPlan)
	plan.POST("", ctrls.plan.CreatePlan)
	plan.PUT("/:planId", ctrls.plan.UpdatePlan)

	receipt := e.Group("/receipt")
	receipt.POST("", ctrls.receipt.CreateReceipt)
	receipt.GET("/user/:userId", ctrls.receipt.ListReceiptsByUser)
	receipt.GET("/:receiptId", ctrls.receipt.GetReceipt)

	return e
}

func mustCreateControllers() (*config.Config, *controllers, func()) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	if err := cfg.PayPal.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid gateway configuration")
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)
	planRepo := repository.NewPlanRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	paypalClient := gateway.NewPayPalClient(gateway.Config{
		ClientID:     cfg.PayPal.ClientID,
		ClientSecret: cfg.PayPal.ClientSecret,
		APIBase:      cfg.PayPal.APIBase,
		BrandName:    cfg.PayPal.BrandName,
		ReturnURL:    cfg.PayPal.ReturnURL,
		CancelURL:    cfg.PayPal.CancelURL,
		HTTPTimeout:  cfg.PayPal.HTTPTimeout,
	})

	paymentService := service.NewPaymentService(paymentRepo, userRepo, paypalClient, cfg.PayPal.BrandName)
	userService := service.NewUserService(userRepo)
	contactService := service.NewContactService(contactRepo)
	planService := service.NewPlanService(planRepo)
	receiptService := service.NewReceiptService(receiptRepo, paymentRepo)

	ctrls := &controllers{
		payment: controller.NewPaymentController(paymentService),
		user:    controller.NewUserController(userService),
		contact: controller.NewContactController(contactService),
		plan:    controller.NewPlanController(planService),
		receipt: controller.NewReceiptController(receiptService),
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, ctrls, cleanup
}
