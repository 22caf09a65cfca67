package settings

import (
	"time"
)

// NewSettings reads the configuration from gocore config.
func NewSettings() *Settings {
	return &Settings{
		LogLevel:      getString("logLevel", "INFO"),
		LoggerType:    getString("logger_type", "zerolog"),
		UsePrometheus: getBool("usePrometheusMetrics", true),
		UtxoSet: UtxoSetSettings{
			InitialCapacity:   getInt("utxoset_initialCapacity", 1024),
			ReservationTTL:    getDuration("utxoset_reservationTTL", 2*time.Minute),
			IngestConcurrency: getInt("utxoset_ingestConcurrency", 32),
		},
		CoinSelection: CoinSelectionSettings{
			DefaultAlgorithm: getString("coinselection_defaultAlgorithm", "greedy"),
		},
	}
}
