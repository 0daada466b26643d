package main

import (
	"github.com/Caisio-Cloud/popmath-game/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.SqliteService{},
		&services.RedisService{},
		&services.MediaService{},

		&services.EventService{},
		&services.ContentService{},
		&services.FlavorService{},
		&services.UserService{},
		&services.GameService{},

		&services.AuthMiddleware{},
		&services.RateLimitService{},
		&services.MonitoringService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
