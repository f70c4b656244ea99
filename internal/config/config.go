package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	BotToken           string
	BotUsername        string
	AdminIDs           []int64
	GroupID            int64
	LogLevel           string
	PollTimeoutSeconds int
	RedisAddr          string
	ResponsesDir       string
	LinkTTLSeconds     int
}

func Load() (Config, error) {
	adminIDs, err := parseAdminIDs(os.Getenv("BOT_ADMIN_IDS"))
	if err != nil {
		return Config{}, err
	}

	// GroupID is accepted but not used for gating yet; kept so deployments
	// that already set it keep working.
	groupID, err := getInt64("BOT_GROUP_ID", 0)
	if err != nil {
		return Config{}, err
	}

	pollTimeout, err := getInt("POLL_TIMEOUT_SECONDS", 30)
	if err != nil {
		return Config{}, err
	}

	linkTTL, err := getInt("LINK_TTL_SECONDS", 180)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BotToken:           strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		BotUsername:        getString("BOT_USERNAME", ""),
		AdminIDs:           adminIDs,
		GroupID:            groupID,
		LogLevel:           getString("LOG_LEVEL", "info"),
		PollTimeoutSeconds: pollTimeout,
		RedisAddr:          getString("REDIS_ADDR", ""),
		ResponsesDir:       getString("RESPONSES_DIR", "responses"),
		LinkTTLSeconds:     linkTTL,
	}

	if cfg.PollTimeoutSeconds <= 0 {
		cfg.PollTimeoutSeconds = 30
	}
	if cfg.LinkTTLSeconds <= 0 {
		cfg.LinkTTLSeconds = 180
	}

	return cfg, nil
}

func parseAdminIDs(raw string) ([]int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	parts := strings.Split(trimmed, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse BOT_ADMIN_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getInt64(key string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
