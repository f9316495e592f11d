// Package config loads, validates, and persists the declarative model
// (YAML: store path, workspaces, categories, repo entries) and the app
// settings layer (embedded TOML defaults with an optional user overlay).
package config
