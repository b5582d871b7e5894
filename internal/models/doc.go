// Package models defines the core domain models for the onMe backend.
//
// Records use opaque string IDs (UUID format) and Unix timestamps, and are
// soft-deleted by flipping their Status to archived rather than removed, so
// historical balances stay computable. Monetary amounts are shopspring
// decimals tagged with a validated currency code; nothing in the domain
// touches binary floats.
//
// The ledger and exchange packages treat these models as immutable inputs;
// only the storage layer writes them.
package models
