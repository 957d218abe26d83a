package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/bourbonvault/backend/internal/domain"
)

//go:embed seed/catalog.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ValidationError collects every schema violation found in a catalog document
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a JSON path
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("catalog validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets callers match the failure with errors.Is(err, domain.ErrValidation)
func (ve *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// Validate checks a catalog document against the catalog schema and the
// cross-entry rules the schema cannot express (unique ids).
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var fieldErrs []FieldError
	for _, desc := range result.Errors() {
		fieldErrs = append(fieldErrs, FieldError{Field: desc.Field(), Message: desc.Description()})
	}
	if len(fieldErrs) > 0 {
		return &ValidationError{Errors: fieldErrs}
	}

	var ids []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	seen := make(map[string]int, len(ids))
	for i, entry := range ids {
		if first, dup := seen[entry.ID]; dup {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   fmt.Sprintf("%d.id", i),
				Message: fmt.Sprintf("duplicate id %q (first at %d)", entry.ID, first),
			})
			continue
		}
		seen[entry.ID] = i
	}
	if len(fieldErrs) > 0 {
		return &ValidationError{Errors: fieldErrs}
	}
	return nil
}

// Decode validates and parses a catalog document
func Decode(data []byte) ([]domain.Bourbon, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var bourbons []domain.Bourbon
	if err := json.Unmarshal(data, &bourbons); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return bourbons, nil
}
