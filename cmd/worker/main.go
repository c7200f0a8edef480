package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shiftboard/internal/config"
	"shiftboard/internal/queue"
	"shiftboard/internal/shift"
	"shiftboard/internal/store"
)

var decisionsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "shiftboard_decisions_processed_total",
	Help: "Approval decisions consumed from the queue, by outcome.",
}, []string{"outcome"})

// Worker consumes decision events and turns them into notifications.
// Delivery here is a structured log line per decision; the counter feeds the
// metrics endpoint.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, queue.DecisionsKey)
	}

	repo := shift.NewRepository(db.Client)
	dir := shift.NewDirectory(repo)

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("metrics on :%s", cfg.MetricsPort)
		if err := http.ListenAndServe(":"+cfg.MetricsPort, nil); err != nil {
			log.Printf("metrics server stopped: %v", err)
		}
	}()

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for decision events...")
	for msg := range messages {
		if msg.Type != "approved" && msg.Type != "rejected" {
			continue
		}

		id := string(msg.Body)
		entry, err := repo.GetEntry(ctx, id)
		if err != nil {
			log.Printf("fetch entry %s failed: %v", id, err)
			continue
		}
		if entry == nil {
			log.Printf("entry %s no longer exists, skipping", id)
			continue
		}

		owner := "Unknown"
		if p, err := dir.Lookup(ctx, entry.EmployeeID); err == nil && p != nil {
			owner = p.FullName
		}

		decider := entry.Decision.By
		if m, ok := shift.SeededManager(decider); ok {
			decider = m.FullName
		}

		log.Printf("notify %s (%s): %s on %s %s by %s",
			owner, entry.EmployeeID, entry.ShiftType, entry.Date, msg.Type, decider)
		decisionsProcessed.WithLabelValues(msg.Type).Inc()
	}

	log.Println("worker stopped")
}
