package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/ajo-zero/backend/internal/config"
	v1 "github.com/ajo-zero/backend/internal/controllers/v1"
	"github.com/ajo-zero/backend/internal/eventcache"
	"github.com/ajo-zero/backend/internal/models"
	"github.com/ajo-zero/backend/internal/payout"
	"github.com/ajo-zero/backend/internal/paystack"
	"github.com/ajo-zero/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title			Ajo Zero API
// @description	The backend for Ajo Zero, a fixed-target savings solution with scheduled payouts.
func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create the directory the database lives in
	err = os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	apiURL, err := url.Parse(cfg.APIURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(apiURL)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	co := v1.Controller{
		Gateway:    paystack.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey),
		Events:     eventcache.New(cfg.RedisAddr),
		DepositFee: cfg.DepositFee,
	}
	router.AttachRoutes(co, r.Group("/"))

	payouts := payout.NewScheduler(cfg.PayoutSchedule)
	err = payouts.Start()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer func() {
		<-payouts.Stop().Done()
	}()

	// The port can be configured with the PORT environment variable
	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
