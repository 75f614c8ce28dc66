package currency

import (
	"context"
	"sync"
	"time"

	"github.com/souqhub/marketplace/cmd/config"
	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
	"github.com/souqhub/marketplace/thirdparty/fx"
	"github.com/souqhub/marketplace/utils/logger"
	"go.uber.org/zap"
)

type CurrencyApp interface {
	GetExchangeRate(ctx context.Context) (*model.ExchangeRate, error)
	Convert(amount float64, from, to constant.Currency, rate float64) float64
}

// currencyAppImpl caches the fetched rate for the configured TTL. The clock
// is injectable so the freshness window is testable.
type currencyAppImpl struct {
	config   *config.Config
	fxClient fx.Client
	now      func() time.Time

	mu     sync.Mutex
	cached *model.ExchangeRate
}

func NewCurrencyApp(config *config.Config, fxClient fx.Client) CurrencyApp {
	return &currencyAppImpl{
		config:   config,
		fxClient: fxClient,
		now:      time.Now,
	}
}

// NewCurrencyAppWithClock is the test constructor.
func NewCurrencyAppWithClock(config *config.Config, fxClient fx.Client, now func() time.Time) CurrencyApp {
	return &currencyAppImpl{
		config:   config,
		fxClient: fxClient,
		now:      now,
	}
}

// GetExchangeRate returns the cached rate while it is fresh. On a stale
// cache it refetches; if the fetch fails it falls back to the last known
// value, and to the configured constant when nothing was ever fetched.
// The fallback constant is never cached, so the next call retries the API.
func (s *currencyAppImpl) GetExchangeRate(ctx context.Context) (*model.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.cached != nil && now.Sub(s.cached.FetchedAt) < s.config.FX.CacheTTL {
		return s.cached, nil
	}

	rate, err := s.fxClient.FetchRate(ctx)
	if err != nil {
		logger.Warn("[GetExchangeRate] fetch failed", zap.String("error", err.Error()))
		if s.cached != nil {
			return s.cached, nil
		}
		return &model.ExchangeRate{Rate: s.config.FX.FallbackRate, FetchedAt: now}, nil
	}

	s.cached = &model.ExchangeRate{Rate: rate, FetchedAt: now}
	return s.cached, nil
}

// Convert applies the SYP-per-USD rate. Same-currency conversion is the
// identity.
func (s *currencyAppImpl) Convert(amount float64, from, to constant.Currency, rate float64) float64 {
	if from == to || rate <= 0 {
		return amount
	}
	if from == constant.CurrencyUSD && to == constant.CurrencySYP {
		return amount * rate
	}
	if from == constant.CurrencySYP && to == constant.CurrencyUSD {
		return amount / rate
	}
	return amount
}
