package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"coverbot/impl/core"
	"coverbot/internal/config"
	"coverbot/internal/http-server/api"
	"coverbot/internal/lib/logger"
	"coverbot/internal/lib/sl"
	"coverbot/internal/ws"
	"coverbot/journey"
	"coverbot/journey/dashboard"
	"coverbot/journey/finverify"
	"coverbot/journey/medical"
	"coverbot/journey/onboarding"
	"coverbot/journey/postpayment"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting coverbot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	sent := journey.Sentinels{
		AadhaarOTP:             conf.Demo.AadhaarOTP,
		EpfoFailOTP:            conf.Demo.EpfoFailOTP,
		EpfoTimeoutMobile:      conf.Demo.EpfoTimeoutMobile,
		GstinLength:            conf.Demo.GstinLength,
		MaxOTPAttempts:         conf.Demo.MaxOTPAttempts,
		CallUnavailablePercent: conf.Demo.CallUnavailablePercent,
	}
	lg.Info("demo sentinels loaded",
		sl.Secret("aadhaar_otp", sent.AadhaarOTP),
		sl.Secret("epfo_fail_otp", sent.EpfoFailOTP),
		sl.Secret("epfo_timeout_mobile", sent.EpfoTimeoutMobile),
	)

	rnd := journey.RandFunc(func() int { return rand.IntN(100) })

	union, err := journey.NewUnion(
		onboarding.NewRegistry(sent),
		finverify.NewRegistry(sent),
		medical.NewRegistry(sent, rnd),
		dashboard.NewRegistry(),
		postpayment.NewRegistry(newClaimRef),
	)
	if err != nil {
		lg.Error("build step registries", sl.Err(err))
		return
	}
	if err := union.Validate(); err != nil {
		lg.Error("step graph validation", sl.Err(err))
		return
	}
	lg.Info("step graph validated")

	hub := ws.NewHub(lg)
	go hub.Run()

	handler := core.New(lg)
	handler.SetUnion(union)
	handler.SetHub(hub)
	handler.SetPacing(journey.Pacing{
		TypingBase:    time.Duration(conf.Journey.TypingBaseMs) * time.Millisecond,
		TypingPerChar: time.Duration(conf.Journey.TypingPerCharMs) * time.Millisecond,
		TypingCap:     time.Duration(conf.Journey.TypingCapMs) * time.Millisecond,
		AdvancePause:  time.Duration(conf.Journey.AdvancePauseMs) * time.Millisecond,
	})

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}

// newClaimRef mints a human-quotable claim reference.
func newClaimRef() string {
	return fmt.Sprintf("CLM-%s", strings.ToUpper(uuid.NewString()[:8]))
}
