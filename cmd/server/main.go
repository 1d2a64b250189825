package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and response cache; nil degrades
	// both to no-ops so the API works without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	stats := repository.NewDashboardRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens, hotels, rooms)
	roomH := handler.NewRoomHandler(users, hotels, rooms)
	resH := handler.NewReservationHandler(users, hotels, rooms, reservations)
	dashH := handler.NewDashboardHandler(users, hotels, stats)
	calH := handler.NewCalendarHandler(users, hotels, rooms, reservations)
	setH := handler.NewSettingsHandler(users, hotels)

	// Channel-sync consumer journals created reservations from the
	// broker; it reconnects on its own and never blocks the API.
	go func() {
		if err := queue.StartChannelSyncConsumer(); err != nil {
			log.Printf("channel-sync: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH)
	router.RegisterHotel(e, cfg.JWTSecret, rdb, authH, roomH, resH, dashH, calH, setH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
