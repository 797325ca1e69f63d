package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest"
	"github.com/danilovkiri/dk_go_study_helper/internal/app"
	"github.com/danilovkiri/dk_go_study_helper/internal/config"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

func main() {
	log.WithFields(log.Fields{"version": buildVersion, "date": buildDate, "commit": buildCommit}).Info("studyhelper REST server")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// persistent storages register on the waiting group and close when ctx is cancelled
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
	server, err := rest.InitServer(ctx, cfg, storageInit, app.InitExtractor(cfg), assistant)
	if err != nil {
		log.Fatal(err)
	}
	// set a listener for os.Signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		log.Info("Server shutdown attempted")
		ctxTO, cancelTO := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelTO()
		if err := server.Shutdown(ctxTO); err != nil {
			log.Error("Server shutdown failed: ", err)
		}
		cancel()
	}()
	log.WithField("address", cfg.ServerAddress).Info("Server start attempted")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	// wait for storage goroutines to finish before exiting
	wg.Wait()
	log.Info("Server shutdown succeeded")
}
