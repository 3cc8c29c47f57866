// Package log provides secure logging built on top of the standard slog package.
//
// The SecureHandler masks values that look like the secrets the security
// scan reports: API-key-shaped tokens, passwords inside credentialed URLs,
// bearer tokens and private key blocks. Attributes whose key names suggest
// a secret (password, token, credential, ...) are masked regardless of value.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("rule matched",
//	    "path", "docs/MEMORY.md",
//	    "line", "db: postgres://app:hunter2@db/app", // password masked
//	)
package log
