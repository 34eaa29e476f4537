// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// parseFlags parses the command-line flags in args.
//
// Flags:
//
//	-host listener interface
//	-p listener port
//	-shutdown-timeout graceful shutdown timeout (e.g., "30s")
//	-d database DSN
//	-c/-config json file path with configs
//	-cookie-secret cookie signing secret
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-log-level minimum log level
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		host            string
		port            int
		shutdownTimeout time.Duration
		databaseDSN     string
		jsonConfigPath  string
		cookieSecret    string
		tokenSignKey    string
		tokenIssuer     string
		logLevel        string
	)

	fs.StringVar(&host, "host", "", "Listener interface")
	fs.IntVar(&port, "p", 0, "Listener port")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g., 30s)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cookieSecret, "cookie-secret", "", "Cookie signing secret")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Server: Server{
			Host:            host,
			Port:            port,
			ShutdownTimeout: shutdownTimeout,
		},
		App: App{
			CookieSecret: cookieSecret,
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			LogLevel:     logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
