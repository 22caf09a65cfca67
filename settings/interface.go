// Package settings resolves the configuration for go-txcore from gocore
// config into typed structs, applying defaults for anything unset.
package settings

import "time"

// UtxoSetSettings configures the in-memory utxo set store.
type UtxoSetSettings struct {
	// InitialCapacity sizes the outpoint table at creation.
	InitialCapacity int

	// ReservationTTL is how long a selection holds its points before an
	// unreleased reservation expires on its own.
	ReservationTTL time.Duration

	// IngestConcurrency bounds the goroutines adding transactions during
	// batch ingest.
	IngestConcurrency int
}

// CoinSelectionSettings configures coin selection defaults.
type CoinSelectionSettings struct {
	DefaultAlgorithm string
}

// Settings is the root configuration object, resolved once at startup and
// handed down to every component.
type Settings struct {
	LogLevel      string
	LoggerType    string
	UsePrometheus bool

	UtxoSet       UtxoSetSettings
	CoinSelection CoinSelectionSettings
}
