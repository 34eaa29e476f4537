// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config file.
type StructuredJSONConfig struct {
	Server struct {
		Host              string   `json:"host"`
		Port              int      `json:"port"`
		ShutdownTimeout   Duration `json:"shutdown_timeout"`
		ReadHeaderTimeout Duration `json:"read_header_timeout"`
		MaxBodyBytes      int64    `json:"max_body_bytes"`
	} `json:"server,omitempty"`

	App struct {
		CookieSecret       string   `json:"cookie_secret"`
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		LogLevel           string   `json:"log_level"`
		CORSAllowedOrigins  []string `json:"cors_allowed_origins"`
		DisableProxyHeaders bool     `json:"disable_proxy_headers"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN            string   `json:"dsn"`
			MigrationsDir  string   `json:"migrations_dir"`
			ConnectTimeout Duration `json:"connect_timeout"`
		} `json:"db,omitempty"`

		Redis struct {
			URL string `json:"url"`
		} `json:"redis,omitempty"`

		Watchdog struct {
			Interval Duration `json:"interval"`
			Failures int      `json:"failures"`
		} `json:"watchdog,omitempty"`
	} `json:"storage,omitempty"`

	RateLimit struct {
		Backend    string   `json:"backend"`
		Requests   int      `json:"requests"`
		Window     Duration `json:"window"`
		Groups     []string `json:"groups"`
		FailClosed bool     `json:"fail_closed"`
	} `json:"rate_limit,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Server: Server{
			Host:              jsonCfg.Server.Host,
			Port:              jsonCfg.Server.Port,
			ShutdownTimeout:   time.Duration(jsonCfg.Server.ShutdownTimeout),
			ReadHeaderTimeout: time.Duration(jsonCfg.Server.ReadHeaderTimeout),
			MaxBodyBytes:      jsonCfg.Server.MaxBodyBytes,
		},
		App: App{
			CookieSecret:        jsonCfg.App.CookieSecret,
			TokenSignKey:        jsonCfg.App.TokenSignKey,
			TokenIssuer:         jsonCfg.App.TokenIssuer,
			LogLevel:            jsonCfg.App.LogLevel,
			CORSAllowedOrigins:  jsonCfg.App.CORSAllowedOrigins,
			DisableProxyHeaders: jsonCfg.App.DisableProxyHeaders,
		},
		Storage: Storage{
			DB: DB{
				DSN:            jsonCfg.Storage.DB.DSN,
				MigrationsDir:  jsonCfg.Storage.DB.MigrationsDir,
				ConnectTimeout: time.Duration(jsonCfg.Storage.DB.ConnectTimeout),
			},
			Redis: Redis{
				URL: jsonCfg.Storage.Redis.URL,
			},
			Watchdog: Watchdog{
				Interval: time.Duration(jsonCfg.Storage.Watchdog.Interval),
				Failures: jsonCfg.Storage.Watchdog.Failures,
			},
		},
		RateLimit: RateLimit{
			Backend:    jsonCfg.RateLimit.Backend,
			Requests:   jsonCfg.RateLimit.Requests,
			Window:     time.Duration(jsonCfg.RateLimit.Window),
			Groups:     jsonCfg.RateLimit.Groups,
			FailClosed: jsonCfg.RateLimit.FailClosed,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
