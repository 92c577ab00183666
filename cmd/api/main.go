package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	config "pos-terminal/configs"
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/pkg/backend"
	database "pos-terminal/internal/pkg/db"
	"pos-terminal/internal/pkg/logger"
	midtransPkg "pos-terminal/internal/pkg/midtrans"
	"pos-terminal/internal/pkg/rabbitmq"
	"pos-terminal/internal/pkg/redis"
	s3aws "pos-terminal/internal/pkg/storage/s3"
	"pos-terminal/internal/pkg/validation"
	serverApp "pos-terminal/internal/server"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title           POS Terminal API
// @version         1.0
// @description     Cart, checkout and payment orchestration for point-of-sale terminals

// @BasePath        /api
func main() {
	logger.Setup()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		cancel()
		return
	}

	// Setup RabbitMQ
	rabbit, err := setupRabbitMQ(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up RabbitMQ", err)
		cancel()
		return
	}

	// Setup Database (ledger). The terminal keeps selling without it.
	db, err := setupDB(env, redisClient)
	if err != nil {
		logger.Warning.Println("Error setting up Database, ledger disabled:", err)
		db = nil
	}

	setupServer(&config.SetupServerDto{
		Rds:     redisClient,
		Env:     env,
		Ctx:     &ctx,
		Cancel:  cancel,
		Db:      db,
		Wg:      &wg,
		Rb:      rabbit,
		S3:      setupS3(env),
		Mt:      setupMidtrans(env),
		Backend: setupBackend(env),
	})
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		DB:       env.RedisDB,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   env.DBSSLMode,
		Driver:    env.DBDriver,
		Cache:     env.DBCache,
		Rds:       rds,
		CacheTime: time.Minute,
	})
}

func setupMidtrans(env *config.Config) *midtransPkg.MidtransClient {
	if env.PaymentGateway != enum.GATEWAY_MIDTRANS {
		return nil
	}
	return midtransPkg.Setup(&midtransPkg.Config{
		ServerKey:   env.MidtransServerKey,
		ClientKey:   env.MidtransClientKey,
		Environment: env.MidtransEnvironment,
	})
}

func setupS3(env *config.Config) s3aws.Is3 {
	if env.ReceiptBucket == "" {
		return nil
	}
	client, err := s3aws.NewS3Client(s3aws.S3Config{
		AWSRegion:          env.AWSRegion,
		AWSAccessKeyID:     env.AWSAccessKeyID,
		AWSSecretAccessKey: env.AWSSecretAccessKey,
	}, env.ReceiptBucket)
	if err != nil {
		logger.Warning.Println("Error setting up S3, receipt archive disabled:", err)
		return nil
	}
	return client
}

func setupBackend(env *config.Config) *backend.Client {
	return backend.NewClient(&backend.Config{
		BaseURL:       env.BackendURL,
		Timeout:       env.BackendTimeout,
		ProxyURL:      env.BackendProxyURL,
		SkipTLSVerify: env.BackendSkipTLSVerify,
	})
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg
	rb := payload.Rb
	db := payload.Db

	defer func() {
		if db != nil {
			_ = db.Close()
		}
		_ = rb.Close()
		if rds != nil {
			_ = rds.Close()
		}
		cancel()
		wg.Wait()
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	if env.AppEnv.HideErrors() {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.Default()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.AppPort),
		Handler: e,
	}

	publisher, err := rabbitmq.NewPublisher(*ctx, rb)
	if err != nil {
		panic(err)
	}
	defer func() { _ = publisher.Close() }()

	if env.HandoffMode == enum.HANDOFF_TERMINAL {
		if err := publisher.DeclareExchange(env.HandoffExchange, "direct"); err != nil {
			panic(err)
		}
	}

	serverApp.Setup(e, payload, publisher)

	sub, err := serverApp.InitWorker(payload, publisher)
	if err != nil {
		logger.Error.Println("Receipt worker disabled:", err)
	} else {
		defer func() { _ = sub.Stop() }()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, stop := context.WithTimeout(context.Background(), env.FlowTimeout)
	defer stop()
	_ = server.Shutdown(shutdownCtx)
}
