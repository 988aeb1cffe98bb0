package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MeKo-Tech/textframe/internal/engine"
	"github.com/MeKo-Tech/textframe/internal/processor"
	"github.com/MeKo-Tech/textframe/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for frame processing",
	Long: `Start an HTTP server that accepts camera frames.

The server provides the following endpoints:
  POST /frames     - Process one frame (raw body or multipart field "frame")
  GET  /ws/frames  - Stream frames over a WebSocket
  GET  /health     - Health check endpoint
  GET  /metrics    - Prometheus metrics

Examples:
  textframe serve
  textframe serve --port 8080
  textframe serve --host 0.0.0.0 --port 3000 --max-fps 15`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		corsOrigin := cfg.Server.CORSOrigin
		if cmd.Flags().Changed("cors-origin") {
			corsOrigin, _ = cmd.Flags().GetString("cors-origin")
		}

		if cmd.Flags().Changed("max-frame-size") {
			cfg.Frame.MaxFrameMB, _ = cmd.Flags().GetInt("max-frame-size")
		}

		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if cmd.Flags().Changed("shutdown-timeout") {
			shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
		}

		maxFPS := cfg.Server.MaxFPS
		if cmd.Flags().Changed("max-fps") {
			maxFPS, _ = cmd.Flags().GetFloat64("max-fps")
		}

		burst := cfg.Server.Burst
		if cmd.Flags().Changed("burst") {
			burst, _ = cmd.Flags().GetInt("burst")
		}

		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
		}
		if cfg.Frame.MaxFrameMB <= 0 {
			return fmt.Errorf("invalid max frame size: %d MB (must be positive)", cfg.Frame.MaxFrameMB)
		}
		sensor, err := cfg.SensorOrientation()
		if err != nil {
			return err
		}
		if cfg.UnknownOutputOrientation() {
			slog.Warn("Unknown output orientation, frames resolve as portrait",
				"output_orientation", cfg.Frame.OutputOrientation)
		}

		eng, err := engine.New(cfg.ToEngineConfig())
		if err != nil {
			return fmt.Errorf("failed to create engine: %w", err)
		}
		proc, err := processor.New(eng)
		if err != nil {
			return err
		}

		srv, err := server.NewServer(server.Config{
			Host:               host,
			Port:               port,
			CORSOrigin:         corsOrigin,
			MaxFrameBytes:      cfg.MaxFrameBytes(),
			DefaultOrientation: sensor,
			OutputOrientation:  cfg.Frame.OutputOrientation,
			MaxFPS:             maxFPS,
			Burst:              burst,
		}, proc)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		httpServer := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       time.Duration(timeout) * time.Second,
			WriteTimeout:      time.Duration(timeout) * time.Second,
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			slog.Info("Starting frame server", "host", host, "port", port, "engine", eng.Name())
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Server error", "error", err)
				cancel()
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
		case <-ctx.Done():
			slog.Info("Context cancelled, initiating shutdown")
		}

		slog.Info("Starting graceful shutdown", "timeout", fmt.Sprintf("%ds", shutdownTimeout))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
			return err
		}
		slog.Info("Graceful shutdown completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origins")
	serveCmd.Flags().Int("max-frame-size", 20, "maximum frame size in MB")
	serveCmd.Flags().Int("timeout", 30, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "shutdown timeout in seconds")
	serveCmd.Flags().Float64("max-fps", 0, "maximum frames per second before frames are dropped (0 disables)")
	serveCmd.Flags().Int("burst", 1, "frames admitted back to back before throttling")
}
