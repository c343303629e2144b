package initializers

import (
	"database/sql"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ConnectDB opens the postgres connection named by DB_URL and returns
// the goqu handle. The handle is injected into the store in main rather
// than held as a package global.
func ConnectDB() *goqu.Database {
	dsn := os.Getenv("DB_URL")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}

	return goqu.New("postgres", db)
}
