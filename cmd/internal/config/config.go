package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr         string
	DatabasePath string

	JWTSecret string
	// JWTTTL bounds the lifetime of issued tokens. Logout is purely
	// client-side (no server-side revocation), so this is kept short.
	JWTTTL time.Duration

	// Daily slot template: the fixed list of bookable times per day,
	// generated from [SlotStartHour, SlotEndHour) in SlotStepMinutes
	// increments.
	SlotStartHour   int
	SlotEndHour     int
	SlotStepMinutes int
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:            envOr("ADDR", ":6060"),
		DatabasePath:    envOr("DATABASE_PATH", "./hospital.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTTTL:          time.Hour,
		SlotStartHour:   11,
		SlotEndHour:     17,
		SlotStepMinutes: 30,
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	if raw := os.Getenv("JWT_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, errors.New("JWT_TTL must be a positive duration")
		}
		cfg.JWTTTL = ttl
	}

	var err error
	if cfg.SlotStartHour, err = envIntOr("SLOT_START_HOUR", cfg.SlotStartHour); err != nil {
		return nil, err
	}
	if cfg.SlotEndHour, err = envIntOr("SLOT_END_HOUR", cfg.SlotEndHour); err != nil {
		return nil, err
	}
	if cfg.SlotStepMinutes, err = envIntOr("SLOT_STEP_MINUTES", cfg.SlotStepMinutes); err != nil {
		return nil, err
	}

	if cfg.SlotStartHour < 0 || cfg.SlotEndHour > 24 || cfg.SlotStartHour >= cfg.SlotEndHour {
		return nil, errors.New("slot template hours out of order")
	}
	if cfg.SlotStepMinutes <= 0 || cfg.SlotStepMinutes > 60 {
		return nil, errors.New("SLOT_STEP_MINUTES must be in (0, 60]")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}
