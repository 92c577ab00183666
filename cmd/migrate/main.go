package main

import (
	config "pos-terminal/configs"
	database "pos-terminal/internal/pkg/db"
	"pos-terminal/internal/pkg/logger"
)

func main() {
	logger.Setup()
	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	// No query cache here, migrations go straight to the database.
	db, err := database.Setup(&database.Config{
		Host:     env.DBHost,
		Port:     env.DBPort,
		User:     env.DBUser,
		Password: env.DBPass,
		Database: env.DBName,
		SSLMode:  env.DBSSLMode,
		Driver:   env.DBDriver,
	})
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		return
	}
	defer func() {
		_ = db.Close()
	}()

	logger.Info.Printf("Migrating ledger on %s %s:%d/%s", env.DBDriver.ToString(), env.DBHost, env.DBPort, env.DBName)
	if err := db.RunMigrations(); err != nil {
		logger.Error.Println("Error running migrations", err)
		return
	}

	logger.Info.Println("Migrations completed successfully")
}
