// Package config loads, normalizes, and validates snail configuration.
//
// It supplies repository defaults (the same relative layout the word lists,
// media, and deck build directories have always used), expands user paths,
// reads TOML files, loads a .env file from the working directory, and honours
// SNAIL_* environment overrides. Always obtain settings through this package
// so downstream code receives absolute paths and clear validation errors.
package config
