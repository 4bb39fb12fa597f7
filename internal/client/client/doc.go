// Package client contains the client-side building blocks of fitcal.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the fitcal server: Register/GetSalt/Login, Ping, PushBackup and
//     PullBackup.
//  2. A gRPC implementation (see GRPCClient) that manages a connection,
//     injects an access token via an interceptor, transparently refreshes
//     expired tokens, and maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI,
//     opening an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport conditions are exposed as ErrUnavailable and ErrUnauthorized.
// Server-side outcomes are mapped onto the sentinels of internal/common
// (ErrorNotFound, ErrorAlreadyExists, ErrorValidation, ErrVersionConflict).
// Match them with errors.Is.
package client
