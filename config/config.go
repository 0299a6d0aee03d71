package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var load sync.Once

// Config returns the value of an environment variable, loading .env once on
// first use. Missing keys resolve to an empty string.
func Config(key string) string {
	load.Do(func() {
		godotenv.Load(".env")
	})
	return os.Getenv(key)
}
