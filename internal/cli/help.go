package cli

import "io"

// ShowHelp prints usage information for clipmark.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `clipmark
========

Converts timecoded event CSV exports into Sportscode timeline XML.

Usage:
  clipmark [options] input.csv [more.csv ...]

Options:
  -encoding string
        Input text encoding: utf-8, utf-8-sig, latin-1 (default "utf-8")
  -fps float
        Frames per second of the frames column (default 25)
  -pre float
        Seconds of padding before each event (default 15)
  -post float
        Seconds of padding after each event (default 15)
  -offset string
        Global offset in seconds or H:M:S, may be negative (default "0")
  -start-id int
        ID of the first instance (default 1)
  -mapping string
        YAML file mapping roles to column names
  -out string
        Output directory, or - for stdout (default ".")
  -indent
        Pretty-print the XML
  -workers int
        Concurrent conversions (default CPU cores)
  -preview int
        Print the first N rows with computed times instead of converting
  -log-level string
        Log level: debug, info, warn, error (default "info")
  -help
        Show this help message

Roles for -mapping: mins, secs, frames, code, team, outcome, player, psr, colormark.
Defaults also read CLIPMARK_* environment variables and the CLIPMARK_CONFIG file.

Examples:
  # Convert one file into ./match.xml
  clipmark match.csv

  # Shift all clips 90 seconds later and use tighter padding
  clipmark -offset 1:30 -pre 5 -post 8 match.csv

  # Check the column mapping first
  clipmark -mapping roles.yaml -preview 12 match.csv

  # Convert a season, four files at a time
  clipmark -workers 4 -out xml/ exports/*.csv
`)
}
