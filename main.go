package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adiu19/schedsim/config"
	"github.com/adiu19/schedsim/httpapi"
	"github.com/adiu19/schedsim/simrpc"
	"google.golang.org/grpc"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	grpcAddr := getEnv("SCHEDSIM_GRPC_ADDR", cfg.Server.GRPCAddr)
	httpAddr := getEnv("SCHEDSIM_HTTP_ADDR", cfg.Server.HTTPAddr)

	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatalf("[server] Failed to listen on %s: %v", grpcAddr, err)
	}

	grpcServer := grpc.NewServer()
	simrpc.Register(grpcServer, simrpc.NewServer())

	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: httpapi.New(cfg.Server.RateLimit, cfg.Server.RateBurst).Router(),
	}

	go func() {
		log.Printf("[server] HTTP API listening on %s", httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] HTTP server failed: %v", err)
		}
	}()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		log.Printf("[server] Shutting down gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("[server] HTTP shutdown: %v", err)
		}
		grpcServer.GracefulStop()
	}()

	log.Printf("[server] gRPC server listening on %s", grpcAddr)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("[server] Failed to serve: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
