package catalog

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/bourbonvault/backend/internal/domain"
)

//go:embed seed/bourbons.json
var seedJSON []byte

// StaticProvider serves a catalog that was loaded once and never changes
type StaticProvider struct {
	items   []domain.Bourbon
	version string
}

// NewEmbedded returns the built-in seed catalog
func NewEmbedded() (*StaticProvider, error) {
	return newStatic(seedJSON, "embedded")
}

// LoadFile reads and validates a catalog JSON file
func LoadFile(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	return newStatic(data, path)
}

// NewStatic wraps an in-memory list, mainly for tests and the CLI
func NewStatic(items []domain.Bourbon, version string) *StaticProvider {
	return &StaticProvider{items: cloneAll(items), version: version}
}

func newStatic(data []byte, source string) (*StaticProvider, error) {
	items, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", source, err)
	}
	return &StaticProvider{items: items, version: contentVersion(data)}, nil
}

// GetAll returns a copy of the catalog so callers cannot mutate the source
func (p *StaticProvider) GetAll(ctx context.Context) ([]domain.Bourbon, error) {
	return cloneAll(p.items), nil
}

// Version is a content hash of the loaded document
func (p *StaticProvider) Version() string {
	return p.version
}

func contentVersion(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:6])
}

func cloneAll(items []domain.Bourbon) []domain.Bourbon {
	out := make([]domain.Bourbon, len(items))
	for i, b := range items {
		b.FlavorProfile = append([]string(nil), b.FlavorProfile...)
		out[i] = b
	}
	return out
}
