// Package logger builds configured slog.Logger instances through functional
// options and provides attribute constructors for the fields this service
// logs repeatedly (errors, user ids, providers, locales).
//
//	log := logger.New(
//		logger.WithService("authkit"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//	log.Info("signed in", logger.UserID(id), logger.Provider("google"))
package logger
