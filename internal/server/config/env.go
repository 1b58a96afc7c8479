package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "STREAKKEEPER_"

// Seams for tests.
var (
	dotEnvFile = ".env"
	lookupEnv  = os.LookupEnv
)

// parseEnv overlays STREAKKEEPER_* variables. A .env file in the working
// directory is loaded first; variables already set in the process win.
func parseEnv(config *Config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	str := func(name string, dst *string) {
		if v, ok := lookupEnv(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) error {
		v, ok := lookupEnv(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
		return nil
	}

	str("GRPC_ADDR", &config.EndpointAddrGRPC)
	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("SECRET_KEY", &config.SecretKey)
	str("TIMEZONE", &config.Timezone)
	str("LOG_LEVEL", &config.LogLevel)
	str("LOG_FILE", &config.LogFile)

	if err := dur("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration); err != nil {
		return err
	}
	if err := dur("REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration); err != nil {
		return err
	}

	if v, ok := lookupEnv(envPrefix + "LEADERBOARD_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sLEADERBOARD_LIMIT: %w", envPrefix, err)
		}
		config.LeaderboardLimit = n
	}

	if v, ok := lookupEnv(envPrefix + "CORS_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.CORSAllowOrigins = origins
	}

	return nil
}
