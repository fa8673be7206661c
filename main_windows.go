//go:build windows

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fashionrag/internal/handler"
	"fashionrag/internal/router"
	"fashionrag/internal/service"
	ragsvc "fashionrag/internal/svc"

	"golang.org/x/sys/windows/svc"
)

// isWindowsService checks if running as Windows service
func isWindowsService() bool {
	isService, err := svc.IsWindowsService()
	if err != nil {
		log.Fatalf("Failed to determine if running as service: %v", err)
	}
	return isService
}

// handleInstall installs the Windows service.
func handleInstall(args []string) {
	dataDir := parseDataDirFlag()
	exePath, err := os.Executable()
	if err != nil {
		log.Fatalf("Failed to get executable path: %v", err)
	}

	// Build service startup arguments
	var serviceArgs []string
	if dataDir != "./data" {
		serviceArgs = append(serviceArgs, "--datadir="+dataDir)
	}

	if err := ragsvc.InstallService(serviceName, displayName, description, exePath, serviceArgs); err != nil {
		log.Fatalf("Failed to install service: %v", err)
	}

	fmt.Println("✓ Service installed successfully")
	if dataDir != "./data" {
		fmt.Printf("  Data directory: %s\n", dataDir)
	}
	fmt.Println("\nTo start the service, run:")
	fmt.Println("  fashionrag start")
	fmt.Println("\nOr use Windows Services Manager (services.msc)")
}

// handleRemove uninstalls the Windows service.
func handleRemove() {
	if err := ragsvc.RemoveService(serviceName); err != nil {
		log.Fatalf("Failed to remove service: %v", err)
	}
	fmt.Println("✓ Service removed successfully")
}

// handleStart starts the Windows service.
func handleStart() {
	if err := ragsvc.StartService(serviceName); err != nil {
		log.Fatalf("Failed to start service: %v", err)
	}
	fmt.Println("✓ Service started successfully")
}

// handleStop stops the Windows service.
func handleStop() {
	if err := ragsvc.StopService(serviceName); err != nil {
		log.Fatalf("Failed to stop service: %v", err)
	}
	fmt.Println("✓ Service stopped successfully")
}

// runAsService runs the application as a Windows service.
func runAsService(dataDir string) {
	// Initialize service logger
	logger, err := ragsvc.NewServiceLogger(serviceName, true, filepath.Join(dataDir, "logs"))
	if err != nil {
		log.Fatalf("Failed to create service logger: %v", err)
	}
	defer logger.Close()

	// Initialize application service
	appSvc := &service.AppService{}
	if err := appSvc.Initialize(dataDir); err != nil {
		logger.Error("Failed to initialize application: %v", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Register HTTP API handlers
	app := handler.NewApp(appSvc.GetStore(), appSvc.GetQueryEngine(), appSvc.GetLimiter())
	cleanup := router.Register(app, appSvc.GetConfig().Server.FrontendURL)
	defer cleanup()

	// Run as Windows service
	logger.Info("Starting Fashion RAG service...")
	if err := svc.Run(serviceName, ragsvc.NewRAGService(appSvc, logger)); err != nil {
		logger.Error("Service failed: %v", err)
		log.Fatalf("Service failed: %v", err)
	}
}
