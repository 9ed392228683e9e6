// Package config loads and watches the editor configuration.
//
// Settings come from three layers, lowest priority first: built-in
// defaults, a config file (TOML, or YAML when the path ends in .yaml or
// .yml), and POE_* environment variables. A missing config file is fine;
// the defaults stand.
//
// The Watcher reloads the file when it changes and hands the new Config to
// the session over a channel, so prompt symbols and the context radius can
// be adjusted without restarting the editor.
package config
