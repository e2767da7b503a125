package main

import (
  "context"
  "errors"
  "fmt"
  "net/http"
  "os"
  "os/signal"
  "syscall"
  "time"

  "github.com/wellsync/wellsync-backend/internal/agents"
  redisclient "github.com/wellsync/wellsync-backend/internal/clients/redis"
  "github.com/wellsync/wellsync-backend/internal/db"
  "github.com/wellsync/wellsync-backend/internal/events"
  "github.com/wellsync/wellsync-backend/internal/handlers"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/repos"
  "github.com/wellsync/wellsync-backend/internal/scheduler"
  "github.com/wellsync/wellsync-backend/internal/server"
  "github.com/wellsync/wellsync-backend/internal/services"
  "github.com/wellsync/wellsync-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  checkInRepo := repos.NewCheckInRepo(thePG, log)
  workoutRepo := repos.NewWorkoutLogRepo(thePG, log)
  mealRepo := repos.NewMealLogRepo(thePG, log)
  outputRepo := repos.NewAgentOutputRepo(thePG, log)
  chunkRepo := repos.NewKnowledgeChunkRepo(thePG, log)
  modelRepo := repos.NewPersonalModelRepo(thePG, log)
  callLogRepo := repos.NewAICallLogRepo(thePG, log)

  // Redis cache (optional)
  outputCache, err := redisclient.NewCache(log)
  if err != nil {
    log.Warn("Redis cache unavailable, reads go straight to Postgres", "error", err)
    outputCache = nil
  }

  // Services
  log.Info("Setting up Services from main...")
  aiClient, err := services.NewAIClient(log)
  if err != nil {
    log.Error("Could not init AIClient", "error", err)
    os.Exit(1)
  }
  personalizer := services.NewPersonalizer(log, modelRepo)
  readinessEngine := services.NewReadinessEngine(log, checkInRepo, personalizer)
  retriever := services.NewKnowledgeRetriever(log, chunkRepo, func() (services.Embedder, error) {
    return aiClient, nil
  })

  // Agents
  morningAgent := agents.NewMorningAgent(log, checkInRepo, workoutRepo, outputRepo, callLogRepo, readinessEngine, retriever, aiClient)
  eveningAgent := agents.NewEveningAgent(log, checkInRepo, workoutRepo, mealRepo, outputRepo, callLogRepo, aiClient)
  retrainingAgent := agents.NewRetrainingAgent(log, checkInRepo, personalizer)

  // Event dispatch
  gateway := events.NewGateway(log)
  gateway.Register(events.MorningRecommendation, morningAgent)
  gateway.Register(events.EveningSummary, eveningAgent)
  gateway.Register(events.ModelRetraining, retrainingAgent)

  queueCap := utils.GetEnvAsInt("EVENT_QUEUE_CAPACITY", events.DefaultQueueCapacity, log)
  queue := events.NewQueue(queueCap)

  rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
  defer stop()

  // Diagnostic drain: the gateway is invoked directly by the scheduler, the
  // queue only buffers fired events for observability.
  go func() {
    for {
      ev, err := queue.Get(rootCtx)
      if err != nil {
        return
      }
      log.Debug("Event dequeued", "event_type", ev.Type, "users", len(ev.UserIDs), "fired_at", ev.FiredAt)
    }
  }()

  // Scheduler
  sched, err := scheduler.New(log, userRepo, queue, gateway)
  if err != nil {
    log.Error("Could not init Scheduler", "error", err)
    os.Exit(1)
  }
  sched.Start()
  defer sched.Stop()

  // Handlers
  log.Info("Setting up handlers from main...")
  recommendationHandler := handlers.NewRecommendationHandler(log, outputRepo, checkInRepo, readinessEngine, outputCache)
  insightsHandler := handlers.NewInsightsHandler(log, checkInRepo, workoutRepo, readinessEngine)
  eventTriggerHandler := handlers.NewEventTriggerHandler(log, sched)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    RecommendationHandler: recommendationHandler,
    InsightsHandler:       insightsHandler,
    EventTriggerHandler:   eventTriggerHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  srv := &http.Server{
    Addr:    ":" + port,
    Handler: router,
  }

  go func() {
    log.Info("Server listening", "port", port)
    if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
      log.Error("Server stopped", "error", err)
      stop()
    }
  }()

  <-rootCtx.Done()
  log.Info("Shutting down...")

  shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
  defer cancel()
  if err := srv.Shutdown(shutdownCtx); err != nil {
    log.Warn("Server shutdown failed", "error", err)
  }
  if outputCache != nil {
    _ = outputCache.Close()
  }
}
