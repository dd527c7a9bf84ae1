//go:build integration_test || all_tests

package integration_testing

import (
	"database/sql"
	"fmt"

	"github.com/2beens/bodix/internal/config"
	"github.com/2beens/bodix/internal/pedometer"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	serverPort = 9100
	serverHost = "127.0.0.1"
	testDBName = "bodix"
)

var (
	serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)
	wsEndpoint     = fmt.Sprintf("ws://%s:%d", serverHost, serverPort)
)

func getTestConfig(redisPort, postgresPort string) *config.Config {
	cfg := &config.Config{
		Environment:             "development",
		Host:                    serverHost,
		Port:                    serverPort,
		Timezone:                "UTC",
		RedisHost:               "localhost",
		RedisPort:               redisPort,
		PostgresPort:            postgresPort,
		PostgresHost:            "localhost",
		PostgresDBName:          testDBName,
		PrometheusMetricsHost:   serverHost,
		PrometheusMetricsPort:   "2199",
		AllowedOrigins:          []string{"http://localhost:8080"},
		SettingsRateLimitPerMin: 1000,
	}
	cfg.ApplyDefaults()
	return cfg
}

func runRedis(pool *dockertest.Pool) (*dockertest.Resource, error) {
	redisResource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return nil, fmt.Errorf("run redis: %s", err)
	}
	return redisResource, nil
}

func runPostgres(pool *dockertest.Pool) (*dockertest.Resource, error) {
	pgResource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + testDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, fmt.Errorf("dockerpool run postgres: %s", err)
	}
	return pgResource, nil
}

// openDB waits for postgres to accept connections and creates the samples schema.
func openDB(pool *dockertest.Pool, pgPort string) (*sql.DB, error) {
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/%s?sslmode=disable", pgPort, testDBName)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var err error
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		return db.Ping()
	}); err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	if _, err := db.Exec(pedometer.Schema); err != nil {
		return nil, fmt.Errorf("run init script: %w", err)
	}

	return db, nil
}
