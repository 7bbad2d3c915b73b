// Package log builds the application's slog loggers.
//
// Every logger returned here wraps its handler in a SecureHandler, which
// masks credentials before they are written:
//   - values under keys such as cookie, authorization, password, or token
//   - bearer and basic authorization values, JWTs, and long opaque keys
//   - passwords and token-like query parameters inside logged URLs,
//     including URLs that appear in error messages
//
// # Usage
//
//	logger, closer, err := log.NewLogger(log.Options{
//		Verbose: verbose,
//		File:    "/var/log/quotecrawl/quotecrawl.log",
//	})
//	if err != nil {
//		return err
//	}
//	defer closer.Close()
//	slog.SetDefault(logger)
//
// The optional file sink is rotated by size with lumberjack.
package log
