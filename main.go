package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	redis "github.com/redis/go-redis/v9"

	"venture_web/internal/api"
	"venture_web/internal/config"
	"venture_web/internal/models"
	"venture_web/internal/repository"
	"venture_web/internal/service"
	"venture_web/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Startup{},
		&models.Investor{},
		&models.FundingRound{},
		&models.Offer{},
		&models.CapTableEntry{},
		&models.PitchRoom{},
		&models.PitchRoomMessage{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	cache := service.NewRedisRoundCache(rdb)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	queueClient := asynq.NewClient(redisOpt)
	defer queueClient.Close()
	notifier := service.NewAsynqOfferNotifier(queueClient)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cache, notifier)

	// Offer events are consumed in-process: the worker resolves the pitch
	// room for each event and announces it over the room's sockets.
	worker := service.NewOfferEventWorker(services.PitchRoom.Registry(), repos.PitchRoom)
	queueServer := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 4})
	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TaskTypeOfferEvent, worker.ProcessTask)
	go func() {
		if err := queueServer.Run(mux); err != nil {
			log.Fatalf("Failed to run task worker: %v", err)
		}
	}()

	r := gin.Default()
	api.SetupRoutes(r, services)

	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
