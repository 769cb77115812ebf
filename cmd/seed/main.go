// Command seed creates the admin account and, when enabled, the sample roadmap and members.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/km-silat/km-silat-api/internal/config"
	"github.com/km-silat/km-silat-api/internal/db"
	"github.com/km-silat/km-silat-api/internal/logger"
	"github.com/km-silat/km-silat-api/internal/repository"
	"github.com/km-silat/km-silat-api/internal/repository/dao"
	"github.com/km-silat/km-silat-api/internal/seed"
	"github.com/km-silat/km-silat-api/internal/service"
)

const seedTimeout = time.Minute

func main() {
	if err := run(); err != nil {
		zap.L().Error("seed failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment, conf.Log.Level); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	postgresDB, err := db.OpenPostgres(conf.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	seeder := seed.NewSeeder(
		service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(postgresDB))),
		service.NewRoadmapService(repository.NewRoadmapRepository(dao.NewRoadmapDAO(postgresDB))),
		service.NewMemberService(repository.NewMemberRepository(dao.NewMemberDAO(postgresDB))),
	)

	if err = seeder.Admin(ctx, conf.Seed.AdminUsername, conf.Seed.AdminPassword); err != nil {
		return fmt.Errorf("seeder.Admin -> %w", err)
	}

	if !conf.Seed.Roadmap {
		zap.L().Info("sample content disabled, done")
		return nil
	}

	if err = seeder.Roadmap(ctx); err != nil {
		return fmt.Errorf("seeder.Roadmap -> %w", err)
	}
	if err = seeder.Members(ctx); err != nil {
		return fmt.Errorf("seeder.Members -> %w", err)
	}

	zap.L().Info("seed completed")
	return nil
}
