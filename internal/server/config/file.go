package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/streakkeeper/internal/flagx"
	"github.com/dmitrijs2005/streakkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// strings such as "15m" as well as integer nanoseconds. Absent fields keep
// the values already present in Config.
type FileConfig struct {
	EndpointAddrGRPC             string          `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	EndpointAddrHTTP             string          `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN                  string          `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string          `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	Timezone                     string          `json:"timezone" yaml:"timezone"`
	LeaderboardLimit             int             `json:"leaderboard_limit" yaml:"leaderboard_limit"`
	CORSAllowOrigins             []string        `json:"cors_allow_origins" yaml:"cors_allow_origins"`
	LogLevel                     string          `json:"log_level" yaml:"log_level"`
	LogFile                      string          `json:"log_file" yaml:"log_file"`
}

// parseFile loads the file named by -c or -config, if any. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON.
func parseFile(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.SecretKey, fc.SecretKey)
	if fc.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = fc.RefreshTokenValidityDuration.Duration
	}
	setString(&config.Timezone, fc.Timezone)
	if fc.LeaderboardLimit != 0 {
		config.LeaderboardLimit = fc.LeaderboardLimit
	}
	if len(fc.CORSAllowOrigins) > 0 {
		config.CORSAllowOrigins = fc.CORSAllowOrigins
	}
	setString(&config.LogLevel, fc.LogLevel)
	setString(&config.LogFile, fc.LogFile)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
