package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/solpredict/resolver/internal/resolver"
	"go.uber.org/zap"
)

func testResolution() *resolver.Resolution {
	return &resolver.Resolution{
		ID:          "7b5a2c10-41f2-4d3e-9a88-0c6a1f2d3e4b",
		Market:      "6kdWRDeTupf2DK3A8p1JRjh6adpFStzLZjBany25GY97",
		AssetSymbol: "BTC",
		Question:    "Will BTC go above $55,000?",
		FinalPrice:  5_600_000_000_000,
		Outcome:     true,
		TxSignature: "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW",
		ResolvedAt:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestConsoleStorage_New(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	storage := NewConsoleStorage(logger)

	if storage == nil {
		t.Fatal("expected non-nil storage")
	}

	if storage.logger == nil {
		t.Error("expected non-nil logger")
	}
}

func TestConsoleStorage_StoreResolution(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	storage := NewConsoleStorage(logger)

	res := testResolution()
	ctx := context.Background()

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := storage.StoreResolution(ctx, res)

	// Restore stdout
	w.Close()
	os.Stdout = oldStdout

	// Read captured output
	var buf bytes.Buffer
	io.Copy(&buf, r)
	output := buf.String()

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if !bytes.Contains([]byte(output), []byte("MARKET RESOLVED")) {
		t.Error("expected output to contain 'MARKET RESOLVED'")
	}

	if !bytes.Contains([]byte(output), []byte(res.Question)) {
		t.Errorf("expected output to contain market question %s", res.Question)
	}

	// 5_600_000_000_000 at 8 decimals is $56000.00.
	if !bytes.Contains([]byte(output), []byte("56000.00")) {
		t.Error("expected output to contain formatted final price 56000.00")
	}

	if !bytes.Contains([]byte(output), []byte("UP")) {
		t.Error("expected output to contain outcome UP")
	}
}

func TestConsoleStorage_Close(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	storage := NewConsoleStorage(logger)

	err := storage.Close()
	if err != nil {
		t.Errorf("expected no error on close, got %v", err)
	}
}

func TestPostgresStorage_StoreResolution(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	storage := &PostgresStorage{
		db:     db,
		logger: logger,
	}

	res := testResolution()
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO market_resolutions").
		WithArgs(
			res.ID,
			res.Market,
			res.AssetSymbol,
			res.Question,
			res.FinalPrice,
			res.Outcome,
			res.TxSignature,
			res.ResolvedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = storage.StoreResolution(ctx, res)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStorage_StoreResolution_Error(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	storage := &PostgresStorage{
		db:     db,
		logger: logger,
	}

	res := testResolution()
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO market_resolutions").
		WithArgs(
			res.ID,
			res.Market,
			res.AssetSymbol,
			res.Question,
			res.FinalPrice,
			res.Outcome,
			res.TxSignature,
			res.ResolvedAt,
		).
		WillReturnError(sqlmock.ErrCancelled)

	err = storage.StoreResolution(ctx, res)
	if err == nil {
		t.Error("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStorage_Close(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	storage := &PostgresStorage{
		db:     db,
		logger: logger,
	}

	mock.ExpectClose()

	err = storage.Close()
	if err != nil {
		t.Errorf("expected no error on close, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStorage_Interface(t *testing.T) {
	// Verify both implementations satisfy the Storage interface
	logger, _ := zap.NewDevelopment()

	var _ Storage = NewConsoleStorage(logger)

	db, _, _ := sqlmock.New()
	defer db.Close()

	var _ Storage = &PostgresStorage{db: db, logger: logger}
}
