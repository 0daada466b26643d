package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Caisio-Cloud/popmath-game/services/handlers"
	"github.com/Caisio-Cloud/popmath-game/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc      *AuthMiddleware
	userSvc      *UserService
	gameSvc      *GameService
	contentSvc   *ContentService
	flavorSvc    *FlavorService
	rateLimitSvc *RateLimitService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_MIDDLEWARE_SVC).(*AuthMiddleware)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.gameSvc = svc.Service(GAME_SVC).(*GameService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.flavorSvc = svc.Service(FLAVOR_SVC).(*FlavorService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware())

	app.Get("/ping", svc.ping)

	authHandler := handlers.NewAuthHandler(svc.userSvc)
	userHandler := handlers.NewUserHandler(svc.userSvc)
	gameHandler := handlers.NewGameHandler(svc.gameSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc, svc.flavorSvc)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	v1.Post("/register", svc.rateLimitSvc.Middleware("register"), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.Middleware("login"), authHandler.Login)

	authed := v1.Group("", svc.authSvc.RequiredAuth())
	authed.Post("/logout", authHandler.Logout)

	authed.Get("/user/stats", userHandler.GetStats)
	authed.Get("/user/progress", userHandler.GetProgressHistory)
	authed.Get("/user/settings", userHandler.GetSettings)
	authed.Put("/user/settings", userHandler.UpdateSettings)

	authed.Get("/categories", contentHandler.GetCategories)
	authed.Get("/flavor/meme", contentHandler.RandomMeme)
	authed.Get("/flavor/story", contentHandler.Story)

	authed.Post("/game/start", gameHandler.StartGame)
	authed.Get("/game/question", gameHandler.CurrentQuestion)
	authed.Post("/game/answer", gameHandler.SubmitAnswer)
	authed.Post("/game/hint", gameHandler.UseHint)
	authed.Post("/game/skip", gameHandler.SkipQuestion)
	authed.Get("/game/stats", gameHandler.GameStats)
	authed.Post("/game/quit", gameHandler.QuitGame)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")

	return shared.ResponseOK(c, "pong")
}
