// Package config defines the server settings and loads them with viper from
// an optional config file and ROSTER_* environment variables.
package config
