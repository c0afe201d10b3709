// Package dlob implements the client-side decentralized limit order book:
// a per-market, price-time-priority index over resting orders mirrored from
// the remote ledger. It exposes ordered bid/ask views merged with the
// synthetic vAMM liquidity node, detects crossing (taker, maker) candidate
// pairs, finds conditional orders whose trigger fired, and finds market
// orders past their time in force.
//
// The package is pure and single-writer: no I/O, no locking, no floats.
// It never settles anything; fills are proposed here and confirmed by the
// ledger through later insert/remove/update events.
package dlob
