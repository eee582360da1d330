package cmd

import (
	"context"
	"log/slog"

	"github.com/Fepozopo/thermview/internal/config"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func loggerFrom(cmd interface{ Context() context.Context }) *slog.Logger {
	if l, ok := cmd.Context().Value(loggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFrom(cmd interface{ Context() context.Context }) config.Config {
	if c, ok := cmd.Context().Value(configKey).(config.Config); ok {
		return c
	}
	return config.Default()
}
