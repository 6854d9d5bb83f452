package main

import (
	"context"
	"flag"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/mealdex/recipedex/internal/config"
	"github.com/mealdex/recipedex/internal/infra/database"
	"github.com/mealdex/recipedex/internal/infra/repository"
	"github.com/mealdex/recipedex/internal/infra/trace"
	"github.com/mealdex/recipedex/internal/present/rest"
	"github.com/mealdex/recipedex/internal/usecase"
)

func main() {
	configPath := flag.String("c", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	// tables must exist before the first request is served
	err = database.Migrate(db)
	if err != nil {
		panic("failed to migrate database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic("failed to obtain connection pool")
	}
	defer sqlDB.Close()

	recipeRepo := repository.NewRecipeRepository(db)
	recipeUC := usecase.NewRecipeUsecase(recipeRepo)
	handler := rest.NewHandler(recipeUC)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if conf.Server.EnableTrace {
		shutdown, err := trace.Setup(context.Background(), "recipedex", conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to set up tracing: " + err.Error())
		}
		defer shutdown(context.Background())
		e.Use(otelecho.Middleware("recipedex"))
	}

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}
