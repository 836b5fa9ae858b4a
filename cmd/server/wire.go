// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"devconnect_backend/internal/app"
	"devconnect_backend/internal/auth"
	"devconnect_backend/internal/config"
	"devconnect_backend/internal/github"
	"devconnect_backend/internal/platform/database"
	"devconnect_backend/internal/platform/logger"
	"devconnect_backend/internal/profile"
	"devconnect_backend/internal/shared"
	"devconnect_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,

		// Token Service
		auth.NewJWTService,
		wire.Bind(new(shared.TokenService), new(*auth.JWTService)),

		// User Module
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Auth Module
		auth.NewHandler,

		// Profile Module
		profile.NewGORMRepository,
		profile.NewService,
		wire.Bind(new(profile.Service), new(*profile.ServiceImplementation)),
		profile.NewHandler,

		// GitHub Lookup Module
		github.NewClient,
		github.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
