// Package utxoset provides an in-memory unspent transaction output set.
//
// The store keeps one entry per output, keyed by outpoint. Spending marks
// the entry with the spending txid instead of deleting it, so a reorg can
// put the output back with Unspend. Selections made through SelectUnspent
// are held in a TTL reservation cache to stop concurrent callers picking
// the same outputs; a reservation falls away on its own when the points
// are not spent or released in time.
package utxoset

import (
	"bytes"
	"context"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	txmap "github.com/bsv-blockchain/go-tx-map"
	"github.com/bsv-blockchain/go-txcore/coinselect"
	"github.com/bsv-blockchain/go-txcore/errors"
	"github.com/bsv-blockchain/go-txcore/model"
	"github.com/bsv-blockchain/go-txcore/settings"
	"github.com/bsv-blockchain/go-txcore/ulogger"
	"github.com/bsv-blockchain/go-txcore/util"
	"github.com/jellydator/ttlcache/v3"
	"github.com/ordishs/gocore"
	"golang.org/x/sync/errgroup"
)

// entry is one tracked output. spendingTxID is nil while the output is
// unspent.
type entry struct {
	satoshis     uint64
	spendingTxID *chainhash.Hash
}

// Store is an in-memory UTXO set guarded by a single mutex.
type Store struct {
	logger   ulogger.Logger
	settings *settings.Settings

	mu      sync.Mutex
	entries map[model.OutPoint]*entry

	txIDs        *txmap.SyncedMap[chainhash.Hash, uint32]
	reservations *ttlcache.Cache[model.OutPoint, string]

	blockHeight     atomic.Uint32
	medianBlockTime atomic.Uint32

	stats   *gocore.Stat
	stopped atomic.Bool
}

// New creates an empty store. The reservation cache starts its own cleanup
// goroutine, call Close to stop it.
func New(logger ulogger.Logger, tSettings *settings.Settings) *Store {
	if tSettings.UsePrometheus {
		initPrometheusMetrics()
	}

	initialCapacity := tSettings.UtxoSet.InitialCapacity
	if initialCapacity < 0 {
		initialCapacity = 0
	}

	s := &Store{
		logger:   logger,
		settings: tSettings,
		entries:  make(map[model.OutPoint]*entry, initialCapacity),
		txIDs:    txmap.NewSyncedMap[chainhash.Hash, uint32](),
		reservations: ttlcache.New[model.OutPoint, string](
			ttlcache.WithTTL[model.OutPoint, string](tSettings.UtxoSet.ReservationTTL),
			ttlcache.WithDisableTouchOnHit[model.OutPoint, string](),
		),
		stats: gocore.NewStat("utxoset"),
	}

	go s.reservations.Start()

	return s
}

func (s *Store) Health(_ context.Context, _ bool) (int, string, error) {
	return http.StatusOK, "UTXO Set Store available", nil
}

// AddTx registers every output of tx as a new unspent entry. The
// transaction must be final at blockHeight and can only be added once.
func (s *Store) AddTx(ctx context.Context, tx *model.Tx, blockHeight uint32) error {
	if err := ctx.Err(); err != nil {
		return errors.NewContextCanceledError("[AddTx] aborted", err)
	}

	start := gocore.CurrentNanos()
	defer func() {
		s.stats.NewStat("AddTx").AddTime(start)
	}()

	txHash := tx.TxIDChainHash()

	if !util.IsTransactionFinal(tx, blockHeight, s.medianBlockTime.Load()) {
		err := errors.NewLockTimeError("%v is not final at height %d", txHash, blockHeight)
		s.observeError("AddTx", err)

		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.txIDs.Get(*txHash); ok {
		err := errors.NewTxAlreadyExistsError("%v already exists", txHash)
		s.observeError("AddTx", err)

		return err
	}

	for i, output := range tx.Outputs {
		index, err := safeconversion.IntToUint32(i)
		if err != nil {
			return errors.NewProcessingError("[AddTx][%v] invalid output index", txHash, err)
		}

		point := model.OutPoint{Hash: *txHash, Index: index}
		s.entries[point] = &entry{satoshis: output.Satoshis}
	}

	s.txIDs.Set(*txHash, blockHeight)

	if s.settings.UsePrometheus {
		prometheusUtxoSetAddTx.Inc()
		prometheusUtxoSetAddTxSize.Observe(float64(tx.Size()))
	}

	return nil
}

// Ingest adds a batch of transactions and then marks the inputs of every
// non-coinbase transaction spent. Additions run concurrently, spends are
// applied in batch order so chained transactions resolve within one call.
// Every non-coinbase input must reference an output already in the set.
func (s *Store) Ingest(ctx context.Context, txs []*model.Tx, blockHeight uint32) error {
	start := gocore.CurrentNanos()
	defer func() {
		s.stats.NewStat("Ingest").AddTime(start)
	}()

	if s.settings.UsePrometheus {
		timeStart := time.Now()

		defer func() {
			prometheusUtxoSetIngest.Observe(float64(time.Since(timeStart).Microseconds()) / 1_000_000)
			prometheusUtxoSetIngestTxs.Observe(float64(len(txs)))
		}()
	}

	g, gCtx := errgroup.WithContext(ctx)
	util.SafeSetLimit(g, s.settings.UtxoSet.IngestConcurrency)

	for _, tx := range txs {
		g.Go(func() error {
			return s.AddTx(gCtx, tx, blockHeight)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, tx := range txs {
		if tx.IsCoinbase() {
			continue
		}

		points := make([]model.OutPoint, 0, len(tx.Inputs))
		for _, input := range tx.Inputs {
			points = append(points, input.PreviousOutPoint)
		}

		if err := s.Spend(ctx, points, tx.TxIDChainHash()); err != nil {
			return err
		}
	}

	s.logger.Debugf("[Ingest] added %d txs at height %d", len(txs), blockHeight)

	return nil
}

// Get returns the output at point while it is still unspent.
func (s *Store) Get(_ context.Context, point model.OutPoint) (*model.UnspentOutput, error) {
	start := gocore.CurrentNanos()
	defer func() {
		s.stats.NewStat("Get").AddTime(start)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[point]
	if !ok {
		return nil, errors.NewUtxoNotFoundError("%s not found", point.String())
	}

	if e.spendingTxID != nil {
		return nil, errors.NewSpentError("%s already spent by %v", point.String(), e.spendingTxID)
	}

	return &model.UnspentOutput{OutPoint: point, Satoshis: e.satoshis}, nil
}

// Spend marks every point as spent by spendingTxID. The whole batch is
// validated before anything is written, so it either applies in full or
// not at all. Re-spending a point with the same txid is a no-op, any other
// txid is a double spend. Spent points lose their reservations.
func (s *Store) Spend(_ context.Context, points []model.OutPoint, spendingTxID *chainhash.Hash) error {
	if spendingTxID == nil {
		return errors.NewInvalidArgumentError("spending txid is required")
	}

	start := gocore.CurrentNanos()
	defer func() {
		s.stats.NewStat("Spend").AddTime(start)
	}()

	if s.settings.UsePrometheus {
		timeStart := time.Now()

		defer func() {
			prometheusUtxoSetSpend.Observe(float64(time.Since(timeStart).Microseconds()) / 1_000_000)
		}()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, point := range points {
		e, ok := s.entries[point]
		if !ok {
			err := errors.NewUtxoNotFoundError("%s not found", point.String())
			s.observeError("Spend", err)

			return err
		}

		if e.spendingTxID != nil && !e.spendingTxID.IsEqual(spendingTxID) {
			err := errors.NewSpentError("%s already spent by %v", point.String(), e.spendingTxID)
			s.observeError("Spend", err)

			return err
		}
	}

	id := *spendingTxID

	for _, point := range points {
		s.entries[point].spendingTxID = &id
		s.reservations.Delete(point)
	}

	return nil
}

// Unspend clears the spend marks on points, returning them to the set.
// Used when a reorg invalidates the spending transaction.
func (s *Store) Unspend(_ context.Context, points []model.OutPoint) error {
	start := gocore.CurrentNanos()
	defer func() {
		s.stats.NewStat("Unspend").AddTime(start)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, point := range points {
		if _, ok := s.entries[point]; !ok {
			err := errors.NewUtxoNotFoundError("%s not found", point.String())
			s.observeError("Unspend", err)

			return err
		}
	}

	for _, point := range points {
		s.entries[point].spendingTxID = nil
	}

	return nil
}

// Unspent returns a snapshot of all unspent, unreserved outputs sorted by
// outpoint.
func (s *Store) Unspent(_ context.Context) ([]model.UnspentOutput, error) {
	start := gocore.CurrentNanos()
	defer func() {
		s.stats.NewStat("Unspent").AddTime(start)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unspentLocked(), nil
}

// unspentLocked builds the sorted snapshot. Callers must hold mu.
func (s *Store) unspentLocked() []model.UnspentOutput {
	unspent := make([]model.UnspentOutput, 0, len(s.entries))

	for point, e := range s.entries {
		if e.spendingTxID != nil {
			continue
		}

		if s.reservations.Get(point) != nil {
			continue
		}

		unspent = append(unspent, model.UnspentOutput{OutPoint: point, Satoshis: e.satoshis})
	}

	sort.Slice(unspent, func(i, j int) bool {
		a, b := &unspent[i].OutPoint, &unspent[j].OutPoint
		if c := bytes.Compare(a.Hash[:], b.Hash[:]); c != 0 {
			return c < 0
		}

		return a.Index < b.Index
	})

	return unspent
}

// SelectUnspent runs coin selection over the current snapshot and reserves
// the chosen points under reservationID. Reserved points disappear from
// Unspent and later selections until they are spent, released, or the TTL
// from the settings runs out. An insufficient set is not an error, the
// result comes back with no points.
func (s *Store) SelectUnspent(_ context.Context, targetSatoshis uint64, algorithm coinselect.Algorithm, reservationID string) (*coinselect.Result, error) {
	if reservationID == "" {
		return nil, errors.NewInvalidArgumentError("reservation id is required")
	}

	start := gocore.CurrentNanos()
	defer func() {
		s.stats.NewStat("SelectUnspent").AddTime(start)
	}()

	if s.settings.UsePrometheus {
		timeStart := time.Now()

		defer func() {
			prometheusUtxoSetSelect.Observe(float64(time.Since(timeStart).Microseconds()) / 1_000_000)
		}()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := coinselect.Select(s.unspentLocked(), targetSatoshis, algorithm)
	if err != nil {
		s.observeError("SelectUnspent", err)

		return nil, err
	}

	for _, point := range result.Points {
		s.reservations.Set(point, reservationID, ttlcache.DefaultTTL)
	}

	return result, nil
}

// Release drops the reservations on points without spending them.
func (s *Store) Release(_ context.Context, points []model.OutPoint) error {
	for _, point := range points {
		s.reservations.Delete(point)
	}

	return nil
}

// TxExists reports whether a transaction has been added to the set.
func (s *Store) TxExists(txHash *chainhash.Hash) bool {
	_, ok := s.txIDs.Get(*txHash)
	return ok
}

// UnspentCount returns the number of unspent entries. Reserved outputs
// still count, a reservation is not a spend.
func (s *Store) UnspentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, e := range s.entries {
		if e.spendingTxID == nil {
			count++
		}
	}

	return count
}

// SetBlockHeight records the current chain tip height.
func (s *Store) SetBlockHeight(height uint32) error {
	s.logger.Debugf("setting block height to %d", height)
	s.blockHeight.Store(height)

	return nil
}

func (s *Store) GetBlockHeight() uint32 {
	return s.blockHeight.Load()
}

// SetMedianBlockTime records the median timestamp of the last 11 blocks,
// which AddTx uses for time based lock time checks.
func (s *Store) SetMedianBlockTime(medianTime uint32) error {
	s.logger.Debugf("setting median block time to %d", medianTime)
	s.medianBlockTime.Store(medianTime)

	return nil
}

func (s *Store) GetMedianBlockTime() uint32 {
	return s.medianBlockTime.Load()
}

// Close stops the reservation cache cleanup goroutine. Safe to call more
// than once.
func (s *Store) Close() {
	if s.stopped.CompareAndSwap(false, true) {
		s.reservations.Stop()
	}
}

func (s *Store) observeError(function string, err error) {
	if s.settings.UsePrometheus {
		prometheusUtxoSetErrors.WithLabelValues(function, errors.GetErrorCategory(err)).Inc()
	}
}
