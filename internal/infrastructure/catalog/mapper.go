package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bourbonvault/backend/internal/domain"
)

// remoteCatalog is the upstream wire format
type remoteCatalog struct {
	Version  string          `json:"version"`
	Bourbons []remoteBourbon `json:"bourbons"`
}

type remoteBourbon struct {
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Distillery string   `json:"distillery"`
	Proof      float64  `json:"proof"`
	ABV        float64  `json:"abv"`
	Age        string   `json:"age"`
	MashBill   string   `json:"mash_bill"`
	Origin     string   `json:"origin"`
	Desc       string   `json:"description"`
	Retail     string   `json:"retail_price"`
	MSRP       string   `json:"msrp"`
	Secondary  string   `json:"secondary_price"`
	Notes      []string `json:"tasting_notes"`
	Color      string   `json:"color_hex"`
	Style      string   `json:"style"`
	Rarity     string   `json:"rarity"`
}

// toDomain maps the wire records and runs them through the same schema
// checks as file catalogs.
func (c remoteCatalog) toDomain() ([]domain.Bourbon, error) {
	out := make([]domain.Bourbon, 0, len(c.Bourbons))
	for _, rb := range c.Bourbons {
		out = append(out, mapBourbon(rb))
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode mapped catalog: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return out, nil
}

func mapBourbon(rb remoteBourbon) domain.Bourbon {
	abv := rb.ABV
	if abv == 0 && rb.Proof > 0 {
		abv = rb.Proof / 2
	}

	flavors := make([]string, 0, len(rb.Notes))
	for _, n := range rb.Notes {
		if n = strings.TrimSpace(n); n != "" {
			flavors = append(flavors, n)
		}
	}

	return domain.Bourbon{
		ID:             strings.ToLower(strings.TrimSpace(rb.Slug)),
		Name:           rb.Name,
		Distillery:     rb.Distillery,
		Proof:          rb.Proof,
		ABV:            abv,
		Age:            rb.Age,
		MashBill:       rb.MashBill,
		Origin:         rb.Origin,
		Description:    rb.Desc,
		Price:          rb.Retail,
		MSRP:           rb.MSRP,
		SecondaryPrice: rb.Secondary,
		FlavorProfile:  flavors,
		Color:          rb.Color,
		Category:       domain.Category(strings.ToLower(rb.Style)),
		Rarity:         domain.Rarity(strings.ToLower(rb.Rarity)),
	}
}
