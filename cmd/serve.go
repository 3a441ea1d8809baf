package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/gosplat/internal/monitor"
	"github.com/spf13/cobra"
)

var (
	serverAddr string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP render job server",
	Long: `Starts an HTTP server that accepts render jobs via REST API.
Jobs run in the background; progress can be watched via SSE or the job pages.`,
	RunE: runServer,
}

func init() {
	serveCmd.Flags().StringVar(&serverAddr, "addr", "localhost", "Server bind address")
	serveCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	addr := fmt.Sprintf("%s:%d", serverAddr, serverPort)

	slog.Info("starting gosplat monitor", "addr", addr)
	fmt.Printf("Server listening on http://%s\n", addr)
	fmt.Println("API endpoints:")
	fmt.Println("  POST   /api/v1/jobs                  - Create new render job")
	fmt.Println("  GET    /api/v1/jobs                  - List all jobs")
	fmt.Println("  GET    /api/v1/jobs/:id              - Get job status")
	fmt.Println("  GET    /api/v1/jobs/:id/stream       - SSE progress stream")
	fmt.Println("  GET    /api/v1/jobs/:id/image.png    - Get rendered image")
	fmt.Println("\nPress Ctrl+C to shutdown")

	srv := monitor.NewServer(addr)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		slog.Info("shutdown signal received", "signal", sig)
		fmt.Println("\nShutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		fmt.Println("Server stopped gracefully")
	}

	return nil
}
