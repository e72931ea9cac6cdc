// Package cli provides command-line interface setup and configuration
// for the vaani application. It handles flag parsing, command creation
// and configuration management using cobra and viper, and runs the
// translation flow for the root command and its subcommands.
package cli
