package commands

import (
	"context"
	"fmt"

	"bankcalc/config"
	"bankcalc/domain"
	"bankcalc/repository"
	"bankcalc/service"
)

// backends holds the repositories selected by configuration. Redis and
// Postgres are used when configured, memory otherwise. Accounts from
// ACCOUNTS_FILE seed whichever account store is selected.
type backends struct {
	cache     repository.CacheRepository
	ledger    repository.UsageLedger
	accounts  repository.AccountRepository
	transfers repository.TransferRepository
	loans     repository.LoanRepository
	closers   []func()
}

func openBackends(ctx context.Context) (*backends, error) {
	var accounts []domain.Account
	if cfg.AccountsFile != "" {
		var err error
		if accounts, err = config.LoadAccounts(cfg.AccountsFile); err != nil {
			return nil, err
		}
	}

	b := &backends{
		cache:     repository.NewMemoryCache(),
		ledger:    repository.NewUsageLedgerMemory(),
		accounts:  repository.NewAccountRepositoryMemory(accounts...),
		transfers: repository.NewTransferRepositoryMemory(),
		loans:     repository.NewLoanRepositoryMemory(),
	}

	if cfg.RedisAddr != "" {
		client, err := repository.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.cache = repository.NewRedisCache(client)
		b.ledger = repository.NewRedisUsageLedger(client)
		logger.WithField("addr", cfg.RedisAddr).Info("Using Redis cache and usage ledger")
	}

	if cfg.DatabaseURL != "" {
		pool, err := repository.Connect(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		if err := pool.Migrate(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pgAccounts := repository.NewAccountRepositoryPostgres(pool)
		inserted, err := pgAccounts.Seed(ctx, accounts)
		if err != nil {
			b.Close()
			return nil, err
		}
		if len(accounts) > 0 {
			logger.WithField("inserted", inserted).Info("Seeded accounts")
		}
		b.accounts = pgAccounts
		b.transfers = repository.NewTransferRepositoryPostgres(pool)
		logger.Info("Using Postgres accounts and transfers")
	}

	return b, nil
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func (b *backends) transferService() *service.TransferService {
	return service.NewTransferService(b.accounts, b.ledger, b.transfers, cfg.Limits, logger)
}
