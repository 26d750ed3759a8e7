// Package main runs the readiness MCP server over stdio (for local assistant use).
// The same MCP server is also mounted on the main backend at /mcp over HTTP.
package main

import (
	"flag"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/config"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readinessmcp"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the protocol, logrus writes to stderr
	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	variant, err := readiness.ParseVariant(cfg.CheckinVariant)
	if err != nil {
		log.Fatalf("checkin variant: %v", err)
	}

	service, err := readinessmcp.NewService(variant)
	if err != nil {
		log.Fatalf("readiness service: %v", err)
	}

	if err := server.ServeStdio(readinessmcp.NewServer(service)); err != nil {
		log.Fatal(err)
	}
}
