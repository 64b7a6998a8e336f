// Package config loads service settings from defaults, an optional
// config.yaml and USERBASE_* environment variables using viper, and validates
// the result with go-playground/validator before anything else starts.
package config
