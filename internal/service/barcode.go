package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/provider/openfoodfacts"
)

const defaultBarcodeTTL = 30 * 24 * time.Hour

var barcodePattern = regexp.MustCompile(`^\d{8,14}$`)

type BarcodeClient interface {
	LookupBarcode(ctx context.Context, barcode string) (openfoodfacts.Product, []byte, error)
}

type BarcodeLookupResult struct {
	Product   openfoodfacts.Product `json:"product"`
	FetchedAt time.Time             `json:"fetchedAt"`
	FromCache bool                  `json:"-"`
}

// LookupBarcode serves from the shared cache while the entry is younger than
// the TTL and refreshes it from client otherwise.
func LookupBarcode(ctx context.Context, store kv.Store, client BarcodeClient, barcode string, now time.Time) (BarcodeLookupResult, error) {
	barcode = strings.TrimSpace(barcode)
	if !barcodePattern.MatchString(barcode) {
		return BarcodeLookupResult{}, fmt.Errorf("invalid barcode %q (expected 8-14 digits)", barcode)
	}

	var cached BarcodeLookupResult
	found, err := kv.GetJSON(ctx, store, kv.BarcodeCacheKey(barcode), &cached)
	if err != nil {
		return BarcodeLookupResult{}, fmt.Errorf("read barcode cache: %w", err)
	}
	if found && now.Sub(cached.FetchedAt) < defaultBarcodeTTL {
		cached.FromCache = true
		return cached, nil
	}

	product, _, err := client.LookupBarcode(ctx, barcode)
	if err != nil {
		return BarcodeLookupResult{}, err
	}
	result := BarcodeLookupResult{Product: product, FetchedAt: now.UTC()}
	if err := kv.SetJSON(ctx, store, kv.BarcodeCacheKey(barcode), result); err != nil {
		return BarcodeLookupResult{}, fmt.Errorf("write barcode cache: %w", err)
	}
	return result, nil
}

func CustomFoodFromProduct(p openfoodfacts.Product) CustomFoodInput {
	name := p.Name
	if p.Brand != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(p.Brand)) {
		name = fmt.Sprintf("%s (%s)", name, p.Brand)
	}
	return CustomFoodInput{
		Name:     name,
		Calories: roundTo(p.Calories, 1),
		ProteinG: roundTo(p.ProteinG, 1),
		CarbsG:   roundTo(p.CarbsG, 1),
		FatG:     roundTo(p.FatG, 1),
	}
}

// ImportBarcodeFood looks a product up and saves it as a custom food of the
// logged-in account.
func (s *Session) ImportBarcodeFood(ctx context.Context, client BarcodeClient, barcode string) (model.Food, BarcodeLookupResult, error) {
	if s.current == nil {
		return model.Food{}, BarcodeLookupResult{}, ErrNotAuthenticated
	}
	result, err := LookupBarcode(ctx, s.store, client, barcode, s.now())
	if err != nil {
		return model.Food{}, BarcodeLookupResult{}, err
	}
	food, err := s.AddCustomFood(ctx, CustomFoodFromProduct(result.Product))
	if err != nil {
		return model.Food{}, result, err
	}
	s.logger.Infof("imported barcode %s as %s", result.Product.Barcode, food.ID)
	return food, result, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
