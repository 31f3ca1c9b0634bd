package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"hirelink/internal/auth"
	"hirelink/internal/cache"
	"hirelink/internal/config"
	"hirelink/internal/db"
	"hirelink/internal/model"
	"hirelink/internal/repository"
	"hirelink/internal/service"
)

type seedUser struct {
	Email   string
	Name    string
	Role    model.Role
	Profile *service.ProfileInput
}

var seedUsers = []seedUser{
	{Email: "employer@hirelink.dev", Name: "Acme Hiring", Role: model.RoleEmployer},
	{
		Email: "talent@hirelink.dev",
		Name:  "Jane Doe",
		Role:  model.RoleTalent,
		Profile: &service.ProfileInput{
			ResumeText: "Jane Doe\nSenior Backend Engineer\n\n" +
				"Experience\n- Payments platform, Go and MySQL, 2019-present\n- Search infrastructure, Java, 2015-2019\n\n" +
				"Skills\nGo, distributed systems, Redis, Kubernetes",
			WorkStylePreference: "Remote-first, async",
			IndustryPreference:  "Fintech",
			LocationPreference:  "Europe",
		},
	},
}

func main() {
	password := pflag.String("password", "password123", "password for every seeded user")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.SlogLevel())

	if err := run(context.Background(), cfg, logger, *password); err != nil {
		logger.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seed completed")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, password string) error {
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, false); err != nil {
		return err
	}
	logger.Info("database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret), auth.NewTokenStore(cacheClient))
	profileService := service.NewProfileService(repository.NewProfileRepository(gormDB), nil)
	userService := service.NewUserService(userRepo, cacheClient)

	created, skipped := 0, 0
	for _, su := range seedUsers {
		user, err := authService.Register(ctx, su.Email, password, su.Name, su.Role.String())
		if errors.Is(err, service.ErrUserAlreadyExists) {
			logger.Info("user exists, skipping", slog.String("email", su.Email))
			skipped++
			continue
		}
		if err != nil {
			return err
		}
		created++

		if su.Profile != nil {
			if _, err := profileService.SaveProfile(ctx, user.ID, *su.Profile); err != nil {
				return err
			}
		}
		logger.Info("user seeded", slog.String("email", su.Email), slog.String("role", su.Role.String()))
	}

	logger.Info("seed summary", slog.Int("created", created), slog.Int("skipped", skipped))
	for _, role := range []model.Role{model.RoleEmployer, model.RoleTalent} {
		users, err := userService.ListByRole(ctx, role)
		if err != nil {
			return err
		}
		logger.Info("users by role", slog.String("role", role.String()), slog.Int("count", len(users)))
	}
	return nil
}
