package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edquiz-service/internal/app"
	"edquiz-service/internal/config"
	"edquiz-service/internal/event"
	"edquiz-service/internal/gamification"
	"edquiz-service/internal/identity"
	"edquiz-service/internal/infra/memory"
	mongostore "edquiz-service/internal/infra/mongo"
	pgloader "edquiz-service/internal/infra/postgres"
	rediscache "edquiz-service/internal/infra/redis"
	transport "edquiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var mongoDB *mongo.Database
	var mongoClient *mongo.Client
	if cfg.Mongo.URI != "" {
		mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return err
		}
		defer mongoClient.Disconnect(context.Background())
		dbName := cfg.Mongo.Database
		if dbName == "" {
			dbName = "edquiz"
		}
		mongoDB = mongoClient.Database(dbName)
	}

	publisher, err := event.NewPublisher(cfg.AMQP.URI, cfg.AMQP.Exchange)
	if err != nil {
		return err
	}
	defer publisher.Close()

	var loader memory.QuestionLoader = memory.NewStaticLoader()
	if pool != nil {
		loader = pgloader.NewQuestionLoader(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var questions app.QuestionRepository
	if redisClient != nil {
		questions = rediscache.NewQuestionRepository(redisClient, loader, quizTTL)
	} else {
		questions = memory.NewQuestionRepository(loader, quizTTL)
	}

	var profiles app.ProfileStore
	var results app.ResultStore
	var leaderboard app.LeaderboardStore
	if mongoDB != nil {
		store := mongostore.NewProfileStore(mongoClient, mongoDB)
		profiles = store
		results = mongostore.NewResultStore(mongoDB)
		leaderboard = store
	} else {
		store := memory.NewProfileStore()
		profiles = store
		results = memory.NewResultStore()
		leaderboard = store
	}
	if redisClient != nil {
		board := rediscache.NewLeaderboard(redisClient, profiles)
		profiles = rediscache.NewMirroredProfileStore(profiles, board)
		leaderboard = board
	}

	engine := gamification.NewEngine(profiles, publisher)
	sessions := memory.NewSessionStore()
	provider := identity.NewMemoryProvider()

	timeLimit := config.TTLDuration(cfg.Quiz.TimeLimit, app.DefaultTimeLimit)
	quizService := app.NewQuizService(
		questions, sessions, results, profiles, engine, publisher,
		app.WithTimeLimit(timeLimit),
	)
	accountService := app.NewAccountService(provider, profiles, engine, publisher)
	dashboardService := app.NewDashboardService(profiles, results, leaderboard)

	router := transport.NewRouter(accountService, quizService, dashboardService, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting edquiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
