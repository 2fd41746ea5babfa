package main

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/pkg/container"
)

// Config holds the worker process settings, derived from the shared config
type Config struct {
	Redis        asynq.RedisClientOpt
	Concurrency  int
	HealthAddr   string
	ShutdownWait time.Duration
	LateLoans    config.LateLoansConfig
}

func loadConfig(c *container.Container) *Config {
	cfg := &Config{
		Redis:        container.RedisClientOpt(c.Config.Redis),
		Concurrency:  c.Config.Worker.Concurrency,
		HealthAddr:   c.Config.Worker.HealthAddr,
		ShutdownWait: time.Duration(c.Config.Worker.ShutdownWait) * time.Second,
		LateLoans:    c.Config.LateLoans,
	}

	log.Info().
		Str("redis", cfg.Redis.Addr).
		Int("concurrency", cfg.Concurrency).
		Str("late_loans_cron", cfg.LateLoans.Cron).
		Msg("[Config] Worker configuration loaded")

	return cfg
}
