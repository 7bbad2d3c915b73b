// Package config holds the runtime settings of quotecrawl: crawl limits,
// fetch behavior, and where the database, exports, and logs go.
// Values come from defaults, an optional .quotecrawl YAML file, and
// command line flags, in that order of precedence.
package config
