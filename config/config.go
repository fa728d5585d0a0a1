package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port     string
	MongoURI string // "memory" selects the in-memory store
	MongoDB  string
	JWTKey   string
}

func Load() Config {
	cfg := Config{
		Port:     os.Getenv("PORT"),
		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  os.Getenv("MONGO_DB"),
		JWTKey:   os.Getenv("JWT_KEY"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "lifeeloopp"
	}
	if cfg.JWTKey == "" {
		// Fresh key per boot; existing sessions are invalidated on
		// restart unless JWT_KEY is pinned.
		cfg.JWTKey = GenerateRandomKey()
	}
	return cfg
}

// GenerateRandomKey returns a random hex key (32 bytes = 64 hex chars).
func GenerateRandomKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
