// Package config provides configuration loading and defaults for claude-bell.
package config

// DefaultClaudeHome is the default location of Claude Code's data directory.
const DefaultClaudeHome = "~/.claude"

// DefaultConfigDir is the default location for claude-bell configuration.
const DefaultConfigDir = "~/.config/claude-bell"

// DefaultDBName is the filename for the notification history database.
const DefaultDBName = "claude-bell.db"

// DefaultBarkServer is the public Bark push server.
const DefaultBarkServer = "https://api.day.app"

// DefaultSound is the notification sound name.
const DefaultSound = "glass"

// DefaultGroup is the Bark notification group name.
const DefaultGroup = "claude-bell"

// DefaultTitle is the notification title when the project name is unknown.
const DefaultTitle = "Claude Code"

// DefaultSummaryLimit is the maximum summary length in characters.
const DefaultSummaryLimit = 80

// DefaultDelimiter separates the fields of the encoded hook result.
const DefaultDelimiter = "|"

// DefaultDesktop controls whether desktop notifications are enabled.
const DefaultDesktop = true
