package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gestionbanque/bankcore/internal/domain"
)

// Domain metrics, registered on the default registry at init.
var (
	TransfersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankcore_transfers_created_total",
		Help: "Total number of transfers committed",
	})

	TransferErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankcore_transfer_errors_total",
			Help: "Total number of failed transfers by error type",
		},
		[]string{"error_type"},
	)

	TransferDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bankcore_transfer_duration_seconds",
		Help:    "Duration of transfer operations including lock wait",
		Buckets: prometheus.DefBuckets,
	})

	AccountsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankcore_accounts_created_total",
		Help: "Total number of accounts created",
	})

	AccountsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankcore_accounts_deleted_total",
		Help: "Total number of accounts deleted",
	})

	LockWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bankcore_lock_wait_seconds",
		Help:    "Time spent waiting for account locks",
		Buckets: []float64{.0001, .001, .01, .05, .1, .5, 1, 2.5, 5},
	})

	LockTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankcore_lock_timeouts_total",
		Help: "Total number of lock acquisitions that timed out",
	})
)

// ErrorType maps a transfer failure to a bounded label value.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrLockTimeout):
		return "lock_timeout"
	default:
		return "internal"
	}
}
