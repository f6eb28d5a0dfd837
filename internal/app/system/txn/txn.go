// internal/app/system/txn/txn.go

// Package txn runs multi-document writes inside a MongoDB transaction
// when the deployment supports them, and falls back to running the
// writes sequentially on standalone servers. Callers get atomicity
// where the topology allows it and best-effort ordering elsewhere.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone deployments, old servers).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	pairs := [][2]string{
		{"transaction", "replica set"},
		{"session", "not supported"},
		{"transaction", "session"},
		{"illegal operation", "transaction"},
	}
	for _, p := range pairs {
		if strings.Contains(msg, p[0]) && strings.Contains(msg, p[1]) {
			return true
		}
	}
	return false
}

// WithTransaction runs fn inside a session transaction. If the server
// rejects transactions, the writes are replayed outside a session so
// the operation still completes on standalone deployments; the caller
// loses atomicity there, which is logged once.
func WithTransaction(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Debug("sessions not supported, running writes without a transaction")
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("transactions not supported, running writes sequentially")
		return fn(ctx)
	}
	return err
}
