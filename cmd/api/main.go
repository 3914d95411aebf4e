package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/Tuksal-Software/barber-sub000/internal/config"
	dbpkg "github.com/Tuksal-Software/barber-sub000/internal/db"
	infraRepo "github.com/Tuksal-Software/barber-sub000/internal/infra/repository"
	"github.com/Tuksal-Software/barber-sub000/internal/middleware"
	"github.com/Tuksal-Software/barber-sub000/internal/notify"
	"github.com/Tuksal-Software/barber-sub000/internal/otp"
	"github.com/Tuksal-Software/barber-sub000/internal/routes"
	"github.com/Tuksal-Software/barber-sub000/internal/scheduler"
	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
	ucsubscription "github.com/Tuksal-Software/barber-sub000/internal/usecase/subscription"
)

func main() {

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	timezone.SetBusiness(cfg.Timezone)

	db := dbpkg.NewDB(cfg)

	// SMS goes through Twilio when configured, otherwise to the log.
	var sender notify.Sender
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		sender = notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, log)
	} else {
		log.Warn().Msg("twilio not configured, sms goes to the log")
		sender = notify.NewLogSender(log)
	}

	// Cancellation codes live in redis so they survive restarts; the
	// in-memory store is the single-node fallback.
	var otpStore otp.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		otpStore = otp.NewRedisStore(client)
	} else {
		log.Warn().Msg("redis not configured, otp codes are in-memory")
		otpStore = otp.NewMemoryStore()
	}

	bookingRepo := infraRepo.NewBookingGormRepository(db)
	generateUC := ucsubscription.NewGenerateOccurrences(bookingRepo, log)

	sched := scheduler.New(generateUC, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Sender:   sender,
		OTPStore: otpStore,
		Log:      log,
		Generate: generateUC,
	})

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
