package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"

	"github.com/angkringan-pos/admin-api/internal/config"
	"github.com/angkringan-pos/admin-api/internal/dashboard"
	"github.com/angkringan-pos/admin-api/internal/middleware"
	"github.com/angkringan-pos/admin-api/internal/router"
	"github.com/angkringan-pos/admin-api/internal/upstream"
	"github.com/angkringan-pos/admin-api/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	middleware.InitMetrics()

	client := upstream.New(cfg.UpstreamURL, &http.Client{Timeout: 15 * time.Second})

	hub := ws.NewHub()
	go hub.Run()

	dash := dashboard.NewService(client)
	dash.OnRefresh(func(stats dashboard.Stats) {
		event, err := ws.NewEvent("dashboard.stats", stats)
		if err != nil {
			log.Printf("ERROR: marshal dashboard stats: %v", err)
			return
		}
		hub.Broadcast(event)
	})

	// Periodic background refresh keeps connected dashboards current even
	// when nobody navigates to the landing screen.
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.Every(cfg.DashboardRefreshInterval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		dash.Refresh(ctx)
	})
	scheduler.StartAsync()

	r := router.New(cfg, client, dash, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
