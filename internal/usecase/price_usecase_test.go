package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
	"github.com/iho/finfolio/internal/usecase/mocks"
)

func newPriceUseCase(t *testing.T) (*usecase.PriceUseCase, *mocks.MockPriceRepository) {
	t.Helper()
	assetRepo := mocks.NewMockAssetRepository()
	if err := assetRepo.Create(context.Background(), &domain.Asset{ID: "btc", Symbol: "BTC", Type: domain.AssetCrypto}); err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	priceRepo := mocks.NewMockPriceRepository()
	return usecase.NewPriceUseCase(priceRepo, assetRepo, mocks.NewMockIDGenerator()), priceRepo
}

func TestPriceUseCase_SetPrice(t *testing.T) {
	uc, _ := newPriceUseCase(t)

	price, err := uc.SetPrice(context.Background(), usecase.SetPriceInput{
		AssetID: "btc",
		Price:   decimal.NewFromInt(64000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.BaseCurrency != "USD" {
		t.Errorf("base currency = %q, want USD default", price.BaseCurrency)
	}
	if price.Timestamp.IsZero() {
		t.Error("timestamp must default to now")
	}
}

func TestPriceUseCase_SetPrice_Rejections(t *testing.T) {
	uc, _ := newPriceUseCase(t)

	_, err := uc.SetPrice(context.Background(), usecase.SetPriceInput{
		AssetID: "ghost",
		Price:   decimal.NewFromInt(1),
	})
	if !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}

	_, err = uc.SetPrice(context.Background(), usecase.SetPriceInput{
		AssetID: "btc",
		Price:   decimal.Zero,
	})
	if !errors.Is(err, domain.ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice for zero, got %v", err)
	}

	_, err = uc.SetPrice(context.Background(), usecase.SetPriceInput{
		AssetID: "btc",
		Price:   decimal.NewFromInt(-5),
	})
	if !errors.Is(err, domain.ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice for negative, got %v", err)
	}
}

func TestPriceUseCase_LatestPrices_NewestWins(t *testing.T) {
	uc, _ := newPriceUseCase(t)

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	for _, in := range []usecase.SetPriceInput{
		{AssetID: "btc", Price: decimal.NewFromInt(40000), Timestamp: &older},
		{AssetID: "btc", Price: decimal.NewFromInt(64000), Timestamp: &newer},
	} {
		if _, err := uc.SetPrice(context.Background(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	latest, err := uc.LatestPrices(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(latest) != 1 {
		t.Fatalf("expected 1 latest price, got %d", len(latest))
	}
	if !latest[0].Price.Equal(decimal.NewFromInt(64000)) {
		t.Errorf("latest price = %s, want 64000", latest[0].Price)
	}
}
