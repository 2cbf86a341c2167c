package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/landahan-pos/console/internal/config"
	"github.com/landahan-pos/console/internal/router"
	"github.com/landahan-pos/console/internal/session"
	"github.com/landahan-pos/console/internal/view"
	"github.com/landahan-pos/console/internal/ws"
)

const reapInterval = 10 * time.Minute

func main() {
	cfg := config.Load()

	views, err := view.NewEngine()
	if err != nil {
		log.Fatalf("ERROR: parse templates: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	manager := session.NewManager(cfg, hub)
	go func() {
		ticker := time.NewTicker(reapInterval)
		defer ticker.Stop()
		for range ticker.C {
			if n := manager.Reap(); n > 0 {
				log.Printf("Reaped %d idle sessions, %d remain", n, manager.Len())
			}
		}
	}()

	r := router.New(cfg, manager, hub, views)

	log.Printf("Starting console on :%s (upstream %s)", cfg.Port, cfg.UpstreamAPIURL)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
