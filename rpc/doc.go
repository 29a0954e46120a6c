// Package rpc serves and consumes the hex-dump conversion pipeline over gRPC.
//
// Callers decode legacy bytes locally (see legacytext) and send UTF-8 text or
// pre-split tokens; the wire never carries legacy-encoded bytes.
package rpc
