package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
)

func main() {
	log.SetPrefix("lg/fitwise-api: ")
	log.SetFlags(log.LstdFlags)

	cfg := loadConfig()

	var store storeSet
	if cfg.DBURL != "" {
		pool := getDBPool(context.Background(), cfg.DBURL)
		defer pool.Close()
		store = newPGStore(pool)
	} else {
		log.Printf("[main] DB_URL not set, using in-memory stores (data is lost on restart)")
		store = newMemoryStore()
	}

	reg := prometheus.NewRegistry()
	h := newHandler(store, cfg, newMetrics(reg))
	router := h.newRouter(reg)

	// The browser front-end is served from another origin.
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(router)

	fmt.Printf("Listening on %s (prediction service: %s)\n", cfg.ListenAddr, cfg.PredictBaseURL)
	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("[main] server stopped: %v", err)
	}
}
