package app

import (
	"context"
	"sync"

	"github.com/solpredict/resolver/internal/circuitbreaker"
	"github.com/solpredict/resolver/internal/ledger"
	"github.com/solpredict/resolver/internal/oracle"
	"github.com/solpredict/resolver/internal/resolver"
	"github.com/solpredict/resolver/pkg/cache"
	"github.com/solpredict/resolver/pkg/config"
	"github.com/solpredict/resolver/pkg/healthprobe"
	"github.com/solpredict/resolver/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	quoteCache    cache.Cache
	oracleClient  *oracle.Client
	ledgerClient  *ledger.Client
	breaker       *circuitbreaker.FeeBalanceBreaker
	poller        *resolver.Poller
	storage       resolver.Storage
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}
