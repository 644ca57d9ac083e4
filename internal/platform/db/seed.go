package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/auth"
	"hrpay/internal/platform/config"
)

// Seed creates the bootstrap admin account. Lookup rows and default rates come
// from the migrations.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	username := strings.TrimSpace(cfg.SeedAdminUsername)
	if username == "" || strings.TrimSpace(cfg.SeedAdminPassword) == "" {
		slog.Info("seed admin skipped, SEED_ADMIN_PASSWORD not set")
		return nil
	}
	return ensureAdminUser(ctx, pool, username, cfg.SeedAdminPassword)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	store := auth.NewStore(pool)
	if _, err := store.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return err
	}
	if _, err := store.CreateUser(ctx, auth.NewUser{Username: username, Password: password, Role: auth.RoleAdmin}); err != nil {
		return err
	}
	slog.Info("seed admin created", "username", username)
	return nil
}
