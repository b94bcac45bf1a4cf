package database

import (
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/jmoiron/sqlx"

	"learndeck/internal/platform/config"
)

const driverName = "pgx"

// DB is the pool used by the platform's own repositories.
var DB *sqlx.DB

// SandboxDB is a separate pool for the raw SQL runner. It connects with the
// simple query protocol so user-submitted multi-statement batches run exactly
// as written (the extended protocol rejects them).
var SandboxDB *sqlx.DB

func Connect() {
	DB = open(config.AppConfig.DBConnStr)
	SandboxDB = open(config.AppConfig.SandboxConnStr)
}

func open(connStr string) *sqlx.DB {
	db, err := sqlx.Connect(driverName, connStr)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}
	return db
}

func Close() {
	if DB != nil {
		DB.Close()
	}
	if SandboxDB != nil {
		SandboxDB.Close()
	}
}
