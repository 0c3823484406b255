package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"edquiz-service/internal/app"
	"edquiz-service/internal/domain"
	"edquiz-service/internal/gamification"
	"edquiz-service/internal/infra/memory"
	pgloader "edquiz-service/internal/infra/postgres"
	pgmigrations "edquiz-service/internal/infra/postgres/migrations"
	infraredis "edquiz-service/internal/infra/redis"
	"edquiz-service/internal/questionbank"
)

func TestQuizFlowAgainstPostgresAndRedis(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBank(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	loader := pgloader.NewQuestionLoader(pool)
	questions := infraredis.NewQuestionRepository(redisClient, loader, 5*time.Minute)

	profiles := memory.NewProfileStore()
	board := infraredis.NewLeaderboard(redisClient, profiles)
	mirrored := infraredis.NewMirroredProfileStore(profiles, board)
	engine := gamification.NewEngine(mirrored, nil)
	service := app.NewQuizService(questions, memory.NewSessionStore(), memory.NewResultStore(), mirrored, engine, nil)

	profile := domain.NewUserProfile("u1", "Asha", "asha@example.com", 7, "CBSE", time.Now())
	if err := profiles.Save(ctx, profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	session, err := service.Start(ctx, "u1", domain.SubjectMathematics, domain.DifficultyEasy, 5)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for range session.Questions() {
		question, _ := session.Current()
		if _, err := service.SelectOption(session.ID(), question.Correct); err != nil {
			t.Fatalf("select: %v", err)
		}
		if _, err := service.Next(session.ID()); err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	outcome, err := service.Finish(ctx, session.ID())
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if outcome.Result.Score != 100 || !outcome.Persisted {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(outcome.Unlocks) == 0 {
		t.Fatalf("expected achievement unlocks")
	}

	// Points awarded during the achievement pass land on the redis board.
	entries, err := board.TopByPoints(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != "u1" {
		t.Fatalf("expected u1 on the board, got %+v", entries)
	}

	// A second start hits the redis question cache.
	if _, err := service.Start(ctx, "u1", domain.SubjectMathematics, domain.DifficultyEasy, 5); err != nil {
		t.Fatalf("second start: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedBank(t *testing.T, ctx context.Context, dsn string) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := pgloader.SeedQuestions(ctx, db, questionbank.All()); err != nil {
		t.Fatalf("seed questions: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
