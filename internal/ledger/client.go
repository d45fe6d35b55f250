// Package ledger reads and mutates prediction-market state on Solana. It
// decodes market and bet accounts at the list boundary, derives the
// auxiliary PDAs a transaction needs, and builds, signs and submits the
// program's instructions.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/solpredict/resolver/pkg/types"
	"github.com/solpredict/resolver/pkg/wallet"
	"go.uber.org/zap"
)

// Client talks to the ledger program through a Solana RPC endpoint.
type Client struct {
	rpc               *rpc.Client
	programID         solana.PublicKey
	receiverProgramID solana.PublicKey
	shardID           uint16
	signer            *wallet.Signer
	timeout           time.Duration
	logger            *zap.Logger
}

// Config holds ledger client configuration.
type Config struct {
	RPCURL            string
	ProgramID         solana.PublicKey
	ReceiverProgramID solana.PublicKey
	ShardID           uint16
	Signer            *wallet.Signer
	Timeout           time.Duration
	Logger            *zap.Logger
}

// NewClient creates a ledger client.
func NewClient(cfg *Config) *Client {
	return &Client{
		rpc:               rpc.New(cfg.RPCURL),
		programID:         cfg.ProgramID,
		receiverProgramID: cfg.ReceiverProgramID,
		shardID:           cfg.ShardID,
		signer:            cfg.Signer,
		timeout:           cfg.Timeout,
		logger:            cfg.Logger,
	}
}

// ProgramID returns the market program address.
func (c *Client) ProgramID() solana.PublicKey { return c.programID }

// Signer returns the client's transaction signer.
func (c *Client) Signer() *wallet.Signer { return c.signer }

// Balance returns the lamport balance of an account.
func (c *Client) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.rpc.GetBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return result.Value, nil
}

// ListMarkets fetches every market account owned by the program. Accounts
// with an incompatible layout are counted, logged and skipped; a decode
// failure never aborts the listing.
func (c *Client) ListMarkets(ctx context.Context) ([]*types.Market, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		ListDurationSeconds.WithLabelValues("markets").Observe(time.Since(start).Seconds())
	}()

	result, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.programID, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: 0, Bytes: solana.Base58(marketDiscriminator[:])}},
		},
	})
	if err != nil {
		ListErrorsTotal.WithLabelValues("markets").Inc()
		return nil, fmt.Errorf("list market accounts: %w", err)
	}

	markets := make([]*types.Market, 0, len(result))

	for _, keyed := range result {
		market, err := DecodeMarket(keyed.Pubkey, keyed.Account.Data.GetBinary())
		if err != nil {
			if errors.Is(err, types.ErrIncompatibleLayout) {
				IncompatibleAccountsTotal.WithLabelValues("market").Inc()
				c.logger.Debug("skipping-incompatible-market",
					zap.String("pubkey", keyed.Pubkey.String()),
					zap.Error(err))
				continue
			}
			return nil, err
		}

		markets = append(markets, market)
	}

	c.logger.Debug("markets-listed",
		zap.Int("total-accounts", len(result)),
		zap.Int("decoded", len(markets)))

	return markets, nil
}

// ListBets fetches the bet accounts owned by one user.
func (c *Client) ListBets(ctx context.Context, owner solana.PublicKey) ([]*types.Bet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		ListDurationSeconds.WithLabelValues("bets").Observe(time.Since(start).Seconds())
	}()

	// The user pubkey sits directly after the discriminator.
	const betUserOffset = 8

	result, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.programID, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: 0, Bytes: solana.Base58(betDiscriminator[:])}},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: betUserOffset, Bytes: solana.Base58(owner.Bytes())}},
		},
	})
	if err != nil {
		ListErrorsTotal.WithLabelValues("bets").Inc()
		return nil, fmt.Errorf("list bet accounts: %w", err)
	}

	bets := make([]*types.Bet, 0, len(result))

	for _, keyed := range result {
		bet, err := DecodeBet(keyed.Pubkey, keyed.Account.Data.GetBinary())
		if err != nil {
			if errors.Is(err, types.ErrIncompatibleLayout) {
				IncompatibleAccountsTotal.WithLabelValues("bet").Inc()
				c.logger.Debug("skipping-incompatible-bet",
					zap.String("pubkey", keyed.Pubkey.String()),
					zap.Error(err))
				continue
			}
			return nil, err
		}

		bets = append(bets, bet)
	}

	return bets, nil
}

// GetMarket fetches and decodes a single market account.
func (c *Client) GetMarket(ctx context.Context, pubkey solana.PublicKey) (*types.Market, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	info, err := c.rpc.GetAccountInfo(ctx, pubkey)
	if err != nil {
		return nil, fmt.Errorf("fetch market account %s: %w", pubkey, err)
	}

	if info == nil || info.Value == nil {
		return nil, fmt.Errorf("market account %s not found", pubkey)
	}

	return DecodeMarket(pubkey, info.Value.Data.GetBinary())
}

// GetBet fetches and decodes a single bet account.
func (c *Client) GetBet(ctx context.Context, pubkey solana.PublicKey) (*types.Bet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	info, err := c.rpc.GetAccountInfo(ctx, pubkey)
	if err != nil {
		return nil, fmt.Errorf("fetch bet account %s: %w", pubkey, err)
	}

	if info == nil || info.Value == nil {
		return nil, fmt.Errorf("bet account %s not found", pubkey)
	}

	return DecodeBet(pubkey, info.Value.Data.GetBinary())
}

// ResolveMarket submits resolve_market(final_price) for an expired market.
// The ledger re-validates expiry and the resolved flag itself; a rejection
// surfaces as ErrLedgerRejected.
func (c *Client) ResolveMarket(ctx context.Context, market *types.Market, finalPrice int64) (solana.Signature, error) {
	priceUpdate, _, err := DeriveOracleUpdateAddress(c.receiverProgramID, market.FeedID, c.shardID)
	if err != nil {
		return solana.Signature{}, err
	}

	ix := solana.NewInstruction(
		c.programID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(market.Pubkey, true, false),
			solana.NewAccountMeta(priceUpdate, false, false),
		},
		resolveMarketData(finalPrice),
	)

	sig, err := c.submit(ctx, []solana.Instruction{ix})
	if err != nil {
		TransactionsTotal.WithLabelValues("resolve_market", "rejected").Inc()
		return solana.Signature{}, &types.LedgerError{
			Op:     "resolve_market",
			Market: market.Pubkey.String(),
			Err:    err,
		}
	}

	TransactionsTotal.WithLabelValues("resolve_market", "submitted").Inc()

	return sig, nil
}

// Claim submits claim() for a winning bet. The connected signer must be
// the bet's owner; the vault PDA is derived client-side and re-checked by
// the program.
func (c *Client) Claim(ctx context.Context, bet *types.Bet, market *types.Market) (solana.Signature, error) {
	if !c.signer.PublicKey().Equals(bet.User) {
		return solana.Signature{}, fmt.Errorf("signer %s does not own bet %s", c.signer.PublicKey(), bet.Pubkey)
	}

	vault, _, err := DeriveVaultAddress(c.programID, market.Pubkey)
	if err != nil {
		return solana.Signature{}, err
	}

	ix := solana.NewInstruction(
		c.programID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(bet.Pubkey, true, false),
			solana.NewAccountMeta(market.Pubkey, true, false),
			solana.NewAccountMeta(vault, true, false),
			solana.NewAccountMeta(c.signer.PublicKey(), true, true),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		},
		claimData(),
	)

	sig, err := c.submit(ctx, []solana.Instruction{ix})
	if err != nil {
		TransactionsTotal.WithLabelValues("claim", "rejected").Inc()
		return solana.Signature{}, &types.LedgerError{
			Op:     "claim",
			Market: market.Pubkey.String(),
			Err:    err,
		}
	}

	TransactionsTotal.WithLabelValues("claim", "submitted").Inc()

	return sig, nil
}

// CreateMarketParams are the arguments for initialize_market.
type CreateMarketParams struct {
	Question        string
	AssetSymbol     string
	DurationSeconds int64
	FeedID          [32]byte
	StartPrice      int64
	PriceConf       uint64
	TargetPrice     int64
	Inverted        bool
}

// CreateMarket creates a new market account and returns its address.
func (c *Client) CreateMarket(ctx context.Context, params *CreateMarketParams) (solana.PublicKey, solana.Signature, error) {
	marketAccount := solana.NewWallet()

	priceUpdate, _, err := DeriveOracleUpdateAddress(c.receiverProgramID, params.FeedID, c.shardID)
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, err
	}

	vault, _, err := DeriveVaultAddress(c.programID, marketAccount.PublicKey())
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, err
	}

	ix := solana.NewInstruction(
		c.programID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(marketAccount.PublicKey(), true, true),
			solana.NewAccountMeta(priceUpdate, false, false),
			solana.NewAccountMeta(vault, true, false),
			solana.NewAccountMeta(c.signer.PublicKey(), true, true),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		},
		initializeMarketData(
			params.Question,
			params.AssetSymbol,
			params.DurationSeconds,
			params.FeedID,
			params.StartPrice,
			params.PriceConf,
			params.TargetPrice,
			params.Inverted,
		),
	)

	sig, err := c.submit(ctx, []solana.Instruction{ix}, marketAccount.PrivateKey)
	if err != nil {
		TransactionsTotal.WithLabelValues("initialize_market", "rejected").Inc()
		return solana.PublicKey{}, solana.Signature{}, &types.LedgerError{
			Op:  "initialize_market",
			Err: err,
		}
	}

	TransactionsTotal.WithLabelValues("initialize_market", "submitted").Inc()

	return marketAccount.PublicKey(), sig, nil
}

// PlaceBet creates a bet account staking amount lamports on a direction.
func (c *Client) PlaceBet(ctx context.Context, market *types.Market, direction bool, amount uint64) (solana.PublicKey, solana.Signature, error) {
	betAccount := solana.NewWallet()

	vault, _, err := DeriveVaultAddress(c.programID, market.Pubkey)
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, err
	}

	ix := solana.NewInstruction(
		c.programID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(betAccount.PublicKey(), true, true),
			solana.NewAccountMeta(market.Pubkey, true, false),
			solana.NewAccountMeta(vault, true, false),
			solana.NewAccountMeta(c.signer.PublicKey(), true, true),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		},
		placeBetData(direction, amount),
	)

	sig, err := c.submit(ctx, []solana.Instruction{ix}, betAccount.PrivateKey)
	if err != nil {
		TransactionsTotal.WithLabelValues("place_bet", "rejected").Inc()
		return solana.PublicKey{}, solana.Signature{}, &types.LedgerError{
			Op:     "place_bet",
			Market: market.Pubkey.String(),
			Err:    err,
		}
	}

	TransactionsTotal.WithLabelValues("place_bet", "submitted").Inc()

	return betAccount.PublicKey(), sig, nil
}

// submit builds, signs and sends a transaction with a fresh blockhash.
func (c *Client) submit(ctx context.Context, instructions []solana.Instruction, extraSigners ...solana.PrivateKey) (solana.Signature, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		recent.Value.Blockhash,
		solana.TransactionPayer(c.signer.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	err = c.signer.Sign(tx, extraSigners...)
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}

	return sig, nil
}
