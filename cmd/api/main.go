package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrant/core/cmd/api/commands"
)

// @title Quadrant API
// @version 1.0
// @description Personal todo manager with an Eisenhower-matrix view

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "quadrant-api",
		Short: "Quadrant API Server",
		Long:  `Quadrant is a personal todo manager: authenticated CRUD over todos with priorities, due dates and an Eisenhower-matrix view.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
