package cli

import (
	"fmt"
	"time"

	"github.com/simpleupdown/updown/pkg/expiry"
	"github.com/simpleupdown/updown/pkg/storage"
)

// AppConfig is read from the environment (and an optional .env file).
// Command flags take precedence over it.
type AppConfig struct {
	BaseURL        string        `env:"UPDOWN_BASE_URL" envDefault:"http://localhost:8000"`
	Timeout        time.Duration `env:"UPDOWN_TIMEOUT" envDefault:"30s"`
	Retries        int           `env:"UPDOWN_RETRIES" envDefault:"2"`
	Lang           string        `env:"UPDOWN_LANG"`
	Timezone       string        `env:"UPDOWN_TIMEZONE" envDefault:"Local"`
	SoonHours      int           `env:"UPDOWN_SOON_HOURS" envDefault:"24"`
	UnlimitedAfter time.Duration `env:"UPDOWN_UNLIMITED_AFTER" envDefault:"788400h"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`

	// POSIX locale variables, consulted when no language is configured.
	LCAll      string `env:"LC_ALL"`
	LCMessages string `env:"LC_MESSAGES"`
	Locale     string `env:"LANG"`

	Archive ArchiveConfig
}

// ArchiveConfig selects where `updown archive` stores files.
type ArchiveConfig struct {
	Driver  string `env:"ARCHIVE_DRIVER" envDefault:"local"`
	Dir     string `env:"ARCHIVE_DIR" envDefault:"./archive"`
	BaseURL string `env:"ARCHIVE_BASE_URL"`

	S3Bucket    string `env:"ARCHIVE_S3_BUCKET"`
	S3Region    string `env:"ARCHIVE_S3_REGION" envDefault:"auto"`
	S3AccessKey string `env:"ARCHIVE_S3_ACCESS_KEY_ID"`
	S3SecretKey string `env:"ARCHIVE_S3_SECRET_ACCESS_KEY"`
	S3Endpoint  string `env:"ARCHIVE_S3_ENDPOINT"`
	S3Prefix    string `env:"ARCHIVE_S3_PREFIX"`
	S3PathStyle bool   `env:"ARCHIVE_S3_PATH_STYLE"`
}

func (c ArchiveConfig) s3Config() storage.S3Config {
	return storage.S3Config{
		Bucket:         c.S3Bucket,
		Region:         c.S3Region,
		AccessKeyID:    c.S3AccessKey,
		SecretKey:      c.S3SecretKey,
		Endpoint:       c.S3Endpoint,
		Prefix:         c.S3Prefix,
		BaseURL:        c.BaseURL,
		ForcePathStyle: c.S3PathStyle,
	}
}

func (c AppConfig) location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: UPDOWN_TIMEZONE %q: %w", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// clockOptions returns the expiry settings from the config. soonHours
// overrides the configured window when positive.
func (c AppConfig) clockOptions(soonHours int) ([]expiry.Option, error) {
	loc, err := c.location()
	if err != nil {
		return nil, err
	}
	if soonHours <= 0 {
		soonHours = c.SoonHours
	}
	return []expiry.Option{
		expiry.WithLocation(loc),
		expiry.WithSoonThreshold(time.Duration(soonHours) * time.Hour),
		expiry.WithUnlimitedThreshold(c.UnlimitedAfter),
	}, nil
}
