// Package config loads typed configuration structs from environment
// variables using github.com/caarlos0/env/v11, with optional .env files read
// by github.com/joho/godotenv.
//
// Each package that needs settings declares its own struct with env tags
// (reqscope.Config, logger.Config, httpserver.Config) and the binary composes
// them:
//
//	type Config struct {
//	    Log   logger.Config
//	    HTTP  httpserver.Config
//	    Trace reqscope.Config
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Parsing failures wrap ErrParsingConfig and can be checked with errors.Is.
package config
