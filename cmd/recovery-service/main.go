package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"

	"github.com/LavaJover/shvark-recovery-service/internal/app/background"
	"github.com/LavaJover/shvark-recovery-service/internal/client"
	"github.com/LavaJover/shvark-recovery-service/internal/config"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/ratelimit"
	"github.com/LavaJover/shvark-recovery-service/internal/usecase/recovery"
	"github.com/LavaJover/shvark-recovery-service/internal/usecase/sharding"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, "db/migrations"); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	// Init repos
	vaultRepo := repository.NewDefaultVaultRepository(db)
	guardianRepo := repository.NewDefaultGuardianRepository(db)
	recoveryRepo := repository.NewDefaultRecoveryRepository(db)
	voteRepo := repository.NewDefaultVoteRepository(db)

	// Kafka publisher for recovery lifecycle events
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	eventPublisher := kafka.NewRecoveryEventPublisher(brokers, cfg.KafkaService.Topic)

	// Notification signals, metrics, per-guardian rate limiter
	recoveryNotifier := notifier.NewHTTPNotifier(cfg.RecoveryPolicy.NotifyCallbackURL)
	recoveryMetrics := metrics.NewRecoveryMetrics()
	limiter := ratelimit.NewGuardianLimiter(cfg.RecoveryPolicy.SubmissionsPerHour)

	// Account service client
	accountClient, err := client.NewAccountClient(fmt.Sprintf("http://%s:%s", cfg.AccountService.Host, cfg.AccountService.Port))
	if err != nil {
		log.Fatalf("failed to init account client: %v", err)
	}

	// Init usecases
	shardingService := sharding.NewService(vaultRepo, guardianRepo)
	recoveryUsecase := recovery.NewDefaultRecoveryUsecase(
		recoveryRepo,
		voteRepo,
		guardianRepo,
		vaultRepo,
		shardingService,
		accountClient,
		eventPublisher,
		recoveryNotifier,
		limiter,
		recoveryMetrics,
	)
	// Housekeeping sweep
	tasks := background.NewBackgroundTasks(recoveryUsecase, recoveryMetrics, slog.Default(), cfg.Scheduler)
	tasks.StartAll(context.Background())

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		log.Printf("metrics server started on %s\n", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("metrics server stopped: %v\n", err)
		}
	}()

	// Creating gRPC server with health service; the client API surface is
	// served by the platform gateway
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Start
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	log.Printf("gRPC server started on %s:%s\n", cfg.GRPCServer.Host, cfg.GRPCServer.Port)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
