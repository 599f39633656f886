package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codigosecreto/internal/httpserver"
	"codigosecreto/internal/store"
	"codigosecreto/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word pool")
	}
	log.Info().Int("words", words.Count()).Msg("word pool loaded")

	st := newStore()
	go sweepLoop(st)

	srv := httpserver.New(st)
	port := getEnv("PORT", "8080")
	log.Info().Str("port", port).Msg("starting codigo-secreto server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// newStore picks SQLite when ROOMS_DB is set, memory otherwise.
func newStore() store.Store {
	if path := os.Getenv("ROOMS_DB"); path != "" {
		st, err := store.OpenSQLite(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to open rooms db")
		}
		log.Info().Str("path", path).Msg("using sqlite room store")
		return st
	}
	return store.NewMemoryStore()
}

// sweepLoop periodically deletes rooms idle past ROOM_TTL.
func sweepLoop(st store.Store) {
	ttl := getDuration("ROOM_TTL", 24*time.Hour)
	interval := getDuration("SWEEP_INTERVAL", time.Hour)

	for range time.Tick(interval) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := st.Sweep(ctx, time.Now().Add(-ttl))
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("room sweep failed")
			continue
		}
		if n > 0 {
			log.Info().Int("rooms", n).Msg("swept idle rooms")
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
