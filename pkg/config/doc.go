// Package config loads typed configuration structs from environment
// variables, optionally seeded from .env files.
//
// Struct fields are mapped with the `env`, `envDefault` and `envSeparator`
// tags understood by github.com/caarlos0/env. Files are read with
// github.com/joho/godotenv and never override variables that are already
// set.
//
// # Entry points
//
//   - Parse fills a struct from the environment on every call. Options set
//     a variable prefix or substitute a map for the process environment.
//   - Load reads ./.env once, parses the struct and caches it per type.
//     MustLoad panics instead of returning an error.
//   - LoadEnv reads explicit .env files; MustLoadEnv panics on failure.
//   - ResetCache clears the Load cache, mostly for tests.
//
// # Usage
//
//	type Settings struct {
//		BaseURL string        `env:"UPDOWN_BASE_URL,required"`
//		Timeout time.Duration `env:"UPDOWN_TIMEOUT" envDefault:"30s"`
//	}
//
//	func main() {
//		if err := config.LoadEnv("./deploy/.env"); err != nil {
//			log.Fatal(err)
//		}
//		var s Settings
//		config.MustLoad(&s)
//	}
//
// Errors wrap the sentinels in errors.go, so callers can test them with
// errors.Is:
//
//	if errors.Is(err, config.ErrParsingConfig) { ... }
package config
