package config

// Template returns the annotated default configuration written by
// "mdsync init".
func Template() string {
	return `# mdsync configuration.
# Remove any key to keep its default.

# Markdown flavor: commonmark or gfm.
flavor: gfm

# Quiet period (milliseconds) after a change signal before the map rebuilds.
debounce_ms: 200

# Logger verbosity: debug, info, warn, error.
log_level: info

# Colorized output: auto, always, never.
color: auto

# Vertical geometry of the preview, in pixels.
layout:
  line_height: 24
  code_line_height: 21
  code_padding: 12
  block_margin: 16
  break_height: 33
  # Multipliers applied to line_height per heading level, h1 first.
  heading_scales: [2.0, 1.5, 1.25, 1.1, 1.0, 0.9]
`
}
