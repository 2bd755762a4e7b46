// Package config loads and validates service settings from an optional .env
// file, an optional config.yaml and REVIEWS_-prefixed environment variables.
// There is no built-in JWT signing secret: Load fails when none is configured.
package config
