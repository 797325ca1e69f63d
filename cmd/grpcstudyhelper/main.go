package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	grpcapi "github.com/danilovkiri/dk_go_study_helper/internal/api/grpc"
	"github.com/danilovkiri/dk_go_study_helper/internal/app"
	"github.com/danilovkiri/dk_go_study_helper/internal/config"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

func main() {
	log.WithFields(log.Fields{"version": buildVersion, "date": buildDate, "commit": buildCommit}).Info("studyhelper gRPC server")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := &sync.WaitGroup{}
	cfg := config.NewDefaultConfiguration()
	if err := cfg.Parse(); err != nil {
		log.Fatal(err)
	}
	if err := app.ConfigureLogging(cfg); err != nil {
		log.Fatal(err)
	}
	storageInit, err := app.InitStorage(ctx, wg, cfg)
	if err != nil {
		log.Fatal(err)
	}
	assistant, err := app.InitAssistant(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	server, err := grpcapi.InitServer(ctx, cfg, storageInit, app.InitExtractor(cfg), assistant)
	if err != nil {
		log.Fatal(err)
	}
	s, healthServer, err := grpcapi.NewGRPCServer(cfg, server, storageInit)
	if err != nil {
		log.Fatal(err)
	}
	listen, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		log.Fatal(err)
	}
	// set a listener for os.Signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-done
		log.Info("Server shutdown attempted")
		healthServer.Shutdown()
		s.GracefulStop()
		cancel()
	}()
	log.WithField("address", cfg.GRPCAddress).Info("Server start attempted")
	if err := s.Serve(listen); err != nil {
		log.Fatal(err)
	}
	wg.Wait()
	log.Info("Server shutdown succeeded")
}
