package main

import (
	"github.com/malaleche/gameserver/config"
	"github.com/malaleche/gameserver/logger"
	"github.com/malaleche/gameserver/persistence"
	"github.com/malaleche/gameserver/server"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	dsn := persistence.DSN(
		cfg.Database.Postgres.Host,
		cfg.Database.Postgres.Port,
		cfg.Database.Postgres.User,
		cfg.Database.Postgres.Password,
		cfg.Database.Postgres.DBName,
	)

	// Initialize Database
	db, err := persistence.NewGormPostgreSQL(dsn)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Log.Info("Database connection successful.")

	// Change feed for room and player rows
	notifier, err := persistence.NewNotifier(dsn)
	if err != nil {
		logger.Log.Fatalf("Failed to start change feed listener: %v", err)
	}
	defer notifier.Close()

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg, db, notifier)

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
