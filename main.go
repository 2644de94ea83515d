package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-app/commands"
	"travel-app/config"
	"travel-app/controllers"
	_ "travel-app/docs"
	"travel-app/jobs"
	"travel-app/repository"
	"travel-app/routes"
	"travel-app/services"
	"travel-app/services/chapa"
	"travel-app/services/logger"
	"travel-app/services/notification"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	app := &cli.App{
		Name:  "travel-app",
		Usage: "listings, bookings, reviews and Chapa payments",
		Commands: []*cli.Command{
			{Name: "serve", Usage: "run the HTTP API", Action: serve},
			{Name: "worker", Usage: "consume booking confirmations and send emails", Action: worker},
			{Name: "migrate", Usage: "create or update database tables", Action: migrate},
			{Name: "seed", Usage: "seed users, listings and bookings", Action: seed},
			{Name: "check-gateway", Usage: "validate Chapa keys and probe the gateway", Action: checkGateway},
		},
		DefaultCommand: "serve",
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *logger.ZeroLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Dir: cfg.Log.Dir, Console: true})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func openDB(cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("connected to %s", cfg.Database.Driver)
	return db, nil
}

func serve(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	router, m, cr := config.InitApp(cfg, log)

	var cache services.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := config.ConnectRedis(c.Context, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, cache disabled: %v", err)
		} else {
			defer rdb.Close()
			cache = services.NewRedisCache(rdb)
		}
	}

	var uploader services.ImageUploader
	cld, err := config.ConnectCloudinary(cfg.Cloudinary)
	if err != nil {
		log.Warn("cloudinary disabled: %v", err)
	} else if cld != nil {
		uploader = services.NewCloudinaryUploader(cld)
	}

	var queue notification.Sender
	if cfg.AMQP.URL != "" {
		dispatcher := notification.NewDispatcher(notification.NewAMQPPublisher(cfg.AMQP.URL), log, cfg.AMQP.BufferSize)
		defer dispatcher.Close()
		queue = dispatcher
	} else {
		log.Warn("RABBITMQ_URL not set, confirmation emails are not queued")
	}
	senders := notification.NewSenders(m, queue)

	users := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)

	listingSvc := services.NewListingService(listingRepo, cache, uploader, log)
	reviewSvc := services.NewReviewService(repository.NewReviewRepository(db), listingRepo, cache, log)
	bookingSvc := services.NewBookingService(repository.NewBookingRepository(db), listingRepo, users, senders.Booking, log)
	paymentSvc := services.NewPaymentService(services.PaymentConfig{
		Gateway:  cfg.Chapa.Gateway(),
		Currency: cfg.Chapa.Currency,
	}, repository.NewPaymentRepository(db), nil, senders.Payment, log)

	if err := jobs.InitCronJobs(cr, paymentSvc, jobs.Options{
		SweepSpec:  cfg.Jobs.StaleSweepSpec,
		StaleAfter: cfg.Jobs.PaymentStaleAfter,
	}, log); err != nil {
		return fmt.Errorf("init cron jobs: %w", err)
	}
	defer cr.Stop()

	routes.SetupRoutes(router, routes.Dependencies{
		Tokens:   tokens,
		Listings: controllers.NewListingController(listingSvc, reviewSvc),
		Bookings: controllers.NewBookingController(bookingSvc),
		Reviews:  controllers.NewReviewController(reviewSvc),
		Payments: controllers.NewPaymentController(paymentSvc),
		WS:       controllers.NewWSController(m, users, log),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	go func() {
		log.Info("server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = m.Close()
	return srv.Shutdown(shutdownCtx)
}

func worker(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()
	if cfg.AMQP.URL == "" {
		return errors.New("RABBITMQ_URL is required for the worker")
	}

	mailer := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	log.Info("notification worker started")
	err = notification.NewConsumer(cfg.AMQP.URL, mailer, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func migrate(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()
	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	log.Info("migration completed")
	return nil
}

func seed(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()
	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	cmd := commands.NewSeedCommand(commands.SeedStores{
		Users:    repository.NewUserRepository(db),
		Listings: repository.NewListingRepository(db),
		Bookings: repository.NewBookingRepository(db),
	}, services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL), os.Stdout, nil)
	return cmd.Execute(c.Context)
}

// checkGateway kiểm tra định dạng key rồi gọi thử initialize
func checkGateway(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	mode, err := chapa.ValidateSecretKey(cfg.Chapa.SecretKey)
	if err != nil {
		return err
	}
	fmt.Printf("secret key format OK (%s mode)\n", mode)
	if cfg.Chapa.PublicKey != "" {
		pubMode, err := chapa.ValidatePublicKey(cfg.Chapa.PublicKey)
		if err != nil {
			return err
		}
		fmt.Printf("public key format OK (%s mode)\n", pubMode)
	}

	gwCfg := cfg.Chapa.Gateway()
	if gwCfg.Timeout == 0 {
		gwCfg.Timeout = 30 * time.Second
	}
	resp, err := chapa.NewClient(gwCfg).Initialize(c.Context, chapa.InitializeRequest{
		Amount:    "100.00",
		Currency:  cfg.Chapa.Currency,
		Email:     "test@example.com",
		FirstName: "Test",
		LastName:  "User",
		TxRef:     fmt.Sprintf("test-%d", time.Now().Unix()),
	})
	if err != nil {
		return fmt.Errorf("gateway probe failed: %w", err)
	}
	fmt.Printf("gateway reachable, checkout_url: %s\n", resp.CheckoutURL())
	return nil
}
