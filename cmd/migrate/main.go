// Command migrate applies the embedded SQL schema to Postgres.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/utils"
	"library-backend/pkg/logger"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(utils.GetEnvVariable("APP_ENV", "development"))
	if envErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Migration command failed")
		os.Exit(1)
	}
}
