// Команда seed наполняет базу тестовыми данными: пользователи со
// сгенерированными профилями, случайные подписки между ними, датасеты
// и голоса. Используется для ручной проверки и демонстраций.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jaswdr/faker"

	"github.com/julioo07/tarea-programada-1-BD/internal/config"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/jwt"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/migrations"
	authservice "github.com/julioo07/tarea-programada-1-BD/internal/services/auth"
	datasetservice "github.com/julioo07/tarea-programada-1-BD/internal/services/dataset"
	socialservice "github.com/julioo07/tarea-programada-1-BD/internal/services/social"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/mongodb"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/postgres"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/redisdb"
)

const seedPassword = "password123"

func main() {
	usersCount := flag.Int("users", 20, "количество пользователей")
	followsCount := flag.Int("follows", 40, "количество случайных подписок")
	datasetsCount := flag.Int("datasets", 30, "количество датасетов")
	flag.Parse()

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting seed", slog.String("env", cfg.Env))

	ctx := context.Background()

	db, err := postgres.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to postgres", sl.Err(err))
		os.Exit(1)
	}
	defer db.DB.Close()
	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	mongoStore, err := mongodb.New(ctx, cfg.MongoConnection)
	if err != nil {
		logger.Error("failed to connect to mongodb", sl.Err(err))
		os.Exit(1)
	}
	defer func() { _ = mongoStore.Close(ctx) }()

	cacheRedis, err := redisdb.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		logger.Error("failed to connect to redis", sl.Err(err))
		os.Exit(1)
	}
	defer func() { _ = cacheRedis.Db.Close() }()

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(db, jwtMaker, logger)
	socialService := socialservice.New(db, cacheRedis, nil, logger)
	datasetService := datasetservice.New(mongoStore, cacheRedis, cacheRedis, logger)

	fake := faker.New()

	uids := make([]string, 0, *usersCount)
	for i := 0; i < *usersCount; i++ {
		firstName := fake.Person().FirstName()
		lastName := fake.Person().LastName()
		username := fmt.Sprintf("%s.%s%d",
			strings.ToLower(firstName), strings.ToLower(lastName), rand.Intn(10000))
		birthDate := time.Now().AddDate(-(18 + rand.Intn(40)), 0, -rand.Intn(365))

		profile, err := authService.Signup(ctx, authservice.SignupData{
			Username:  username,
			Password:  seedPassword,
			Email:     fmt.Sprintf("%s@example.com", username),
			FullName:  firstName + " " + lastName,
			BirthDate: &birthDate,
		})
		if err != nil {
			logger.Warn("failed to create user", slog.String("username", username), sl.Err(err))
			continue
		}
		uids = append(uids, profile.ID)
	}
	logger.Info("users created", slog.Int("count", len(uids)))

	if len(uids) < 2 {
		logger.Error("not enough users to seed follows and datasets")
		os.Exit(1)
	}

	created := 0
	for i := 0; i < *followsCount; i++ {
		follower := uids[rand.Intn(len(uids))]
		target := uids[rand.Intn(len(uids))]
		if follower == target {
			continue
		}
		if err := socialService.Follow(ctx, follower, target); err != nil {
			logger.Warn("failed to create follow", sl.Err(err))
			continue
		}
		created++
	}
	logger.Info("follows created", slog.Int("count", created))

	datasetIDs := make([]string, 0, *datasetsCount)
	for i := 0; i < *datasetsCount; i++ {
		owner := uids[rand.Intn(len(uids))]
		ds, err := datasetService.Create(ctx, owner, datasetservice.CreateData{
			Nombre:      fmt.Sprintf("%s dataset %d", fake.Company().Name(), i+1),
			Descripcion: fake.Lorem().Paragraph(2),
		})
		if err != nil {
			logger.Warn("failed to create dataset", sl.Err(err))
			continue
		}
		datasetIDs = append(datasetIDs, ds.IDDataset)
	}
	logger.Info("datasets created", slog.Int("count", len(datasetIDs)))

	votes := 0
	for _, id := range datasetIDs {
		voter := uids[rand.Intn(len(uids))]
		if err := datasetService.SetVote(ctx, voter, id, 1+rand.Intn(5)); err != nil {
			logger.Warn("failed to set vote", sl.Err(err))
			continue
		}
		votes++
	}
	logger.Info("votes created", slog.Int("count", votes))

	logger.Info("seed finished")
}
