package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ms-teetime/internal/config"
	"ms-teetime/internal/logger"
	"ms-teetime/internal/ops"
	"ms-teetime/internal/server"
	"ms-teetime/internal/store"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.NewLogger(cfg.Log.Dir)
	defer log.Close()

	st := store.New(cfg.Data.Dir)
	if err := st.LoadFromFile(); err != nil {
		log.Warn("STORE", fmt.Sprintf("load failed: %v", err))
	}
	log.LogStore("LOAD", fmt.Sprintf("%d users, %d reservations, %d events, %d tee times",
		len(st.GetAllUsers()), len(st.GetAllReservations()), len(st.GetAllEvents()), len(st.GetAllTeeTimes())))

	srv := server.New(fmt.Sprintf(":%d", cfg.Server.Port), st, log)
	if err := srv.Start(); err != nil {
		log.Fatal("SERVER", fmt.Sprintf("start failed: %v", err))
	}

	if cfg.Server.OpsPort > 0 {
		opsHandler := &ops.Handler{Store: st, ConnCount: srv.ConnCount}
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Server.OpsPort)
			log.LogServer(fmt.Sprintf("ops endpoint on %s", addr))
			if err := http.ListenAndServe(addr, ops.NewRouter(opsHandler)); err != nil {
				log.Error("SERVER", fmt.Sprintf("ops endpoint failed: %v", err))
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.LogServer("shutting down")
	srv.Stop()
	if err := st.SaveToFile(); err != nil {
		log.Error("STORE", fmt.Sprintf("final save failed: %v", err))
	}
	log.LogServer("shutdown complete")
}
