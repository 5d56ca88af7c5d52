package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

var ErrProductNotFound = errors.New("openfoodfacts product not found")

// Product nutrient values are per 100 g.
type Product struct {
	Barcode      string  `json:"barcode"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand,omitempty"`
	Calories     float64 `json:"calories"`
	ProteinG     float64 `json:"protein"`
	CarbsG       float64 `json:"carbs"`
	FatG         float64 `json:"fat"`
	ServingGrams float64 `json:"servingGrams,omitempty"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

func (c *Client) LookupBarcode(ctx context.Context, barcode string) (Product, []byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	userAgent := c.UserAgent
	if userAgent == "" {
		userAgent = "big2fit/1.0"
	}
	url := fmt.Sprintf("%s/api/v2/product/%s.json", base, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Product{}, nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return Product{}, nil, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Product{}, nil, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return Product{}, body, fmt.Errorf("barcode %q: %w", barcode, ErrProductNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Product{}, body, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Product{}, body, fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	name := strings.TrimSpace(parsed.Product.ProductName)
	if parsed.Status != 1 || name == "" {
		return Product{}, body, fmt.Errorf("barcode %q: %w", barcode, ErrProductNotFound)
	}

	serving := servingGrams(parsed.Product)
	n := parsed.Product.Nutriments
	return Product{
		Barcode:      barcode,
		Name:         name,
		Brand:        firstBrand(parsed.Product.Brands),
		Calories:     per100g(n, "energy-kcal", serving),
		ProteinG:     per100g(n, "proteins", serving),
		CarbsG:       per100g(n, "carbohydrates", serving),
		FatG:         per100g(n, "fat", serving),
		ServingGrams: serving,
	}, body, nil
}

// per100g prefers the _100g figure and otherwise scales the per-serving
// figure when the serving weight is known.
func per100g(n map[string]any, base string, serving float64) float64 {
	if v, ok := parseFloatAny(n[base+"_100g"]); ok {
		return v
	}
	if v, ok := parseFloatAny(n[base+"_serving"]); ok && serving > 0 {
		return v * 100 / serving
	}
	return 0
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// servingGrams returns 0 when the serving is not expressed in g or ml.
func servingGrams(p offProduct) float64 {
	if p.ServingQuantity > 0 {
		switch strings.ToLower(strings.TrimSpace(p.ServingQuantityUnit)) {
		case "", "g", "ml":
			return p.ServingQuantity
		}
		return 0
	}
	parts := strings.Fields(strings.TrimSpace(p.ServingSize))
	if len(parts) >= 2 {
		unit := strings.ToLower(parts[1])
		if unit != "g" && unit != "ml" {
			return 0
		}
		if val, err := strconv.ParseFloat(strings.ReplaceAll(parts[0], ",", "."), 64); err == nil && val > 0 {
			return val
		}
	}
	return 0
}

func firstBrand(brands string) string {
	first, _, _ := strings.Cut(brands, ",")
	return strings.TrimSpace(first)
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	ProductName         string         `json:"product_name"`
	Brands              string         `json:"brands"`
	ServingSize         string         `json:"serving_size"`
	ServingQuantity     float64        `json:"serving_quantity"`
	ServingQuantityUnit string         `json:"serving_quantity_unit"`
	Nutriments          map[string]any `json:"nutriments"`
}
