package main

import (
	"context"
	"os"

	"github.com/CoinLift/backend-coinlift/internal/handler"
	"github.com/CoinLift/backend-coinlift/internal/rabbitmq"
	"github.com/CoinLift/backend-coinlift/internal/realtime"
	"github.com/CoinLift/backend-coinlift/internal/repository"
	"github.com/CoinLift/backend-coinlift/internal/service"
	"github.com/CoinLift/backend-coinlift/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := initEnv(); err != nil {
		logger.Sugar().Fatalf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
	}

	db, err := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     viper.GetString("redis.addr"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       viper.GetInt("redis.db"),
	})
	defer rdb.Close()

	mq, err := rabbitmq.Connect(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to rabbitmq: %s", err.Error())
	}
	defer mq.Close()

	files, err := storage.NewS3Storage(viper.GetString("s3.region"), viper.GetString("s3.bucket"))
	if err != nil {
		logger.Sugar().Fatalf("failed to initialize s3 storage: %s", err.Error())
	}

	repo := repository.New(db, rdb)

	if err := repo.Postgres.Notification.SeedEvents(ctx); err != nil {
		logger.Sugar().Fatalf("failed to seed notification events: %s", err.Error())
	}

	hub := realtime.NewHub(logger)
	services := service.New(logger, repo, mq, hub, files)
	h := handler.New(services, hub)

	if err := h.InitRoutes().Run(":" + viper.GetString("port")); err != nil {
		logger.Sugar().Fatalf("failed to run http server: %s", err.Error())
	}
}

func initEnv() error {
	return godotenv.Load(".env")
}

func initConfig() error {
	viper.AddConfigPath("./")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
