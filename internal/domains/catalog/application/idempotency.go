package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
)

type normalizedRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Species       string `json:"species"`
	Category      string `json:"category"`
	Price         string `json:"price"`
	ImageURL      string `json:"imageUrl"`
	Description   string `json:"description"`
	CareLevel     string `json:"careLevel"`
	Size          string `json:"size"`
	Lifespan      string `json:"lifespan"`
	Habitat       string `json:"habitat"`
	Diet          string `json:"diet"`
	InStock       bool   `json:"inStock"`
	StockQuantity int    `json:"stockQuantity"`
}

// FingerprintImport builds a deterministic hash of the catalog document (excluding the idempotency key and source).
func FingerprintImport(input catalogtypes.ImportCatalogInput) (string, error) {
	normalized := make([]normalizedRecord, 0, len(input.Animals))
	for _, a := range input.Animals {
		normalized = append(normalized, normalizedRecord{
			ID:            strings.TrimSpace(a.ID),
			Name:          strings.TrimSpace(a.Name),
			Species:       strings.TrimSpace(a.Species),
			Category:      strings.ToLower(strings.TrimSpace(a.Category)),
			Price:         strings.TrimSpace(a.Price),
			ImageURL:      strings.TrimSpace(a.ImageURL),
			Description:   strings.TrimSpace(a.Description),
			CareLevel:     strings.ToLower(strings.TrimSpace(a.CareLevel)),
			Size:          strings.ToLower(strings.TrimSpace(a.Size)),
			Lifespan:      strings.TrimSpace(a.Lifespan),
			Habitat:       strings.TrimSpace(a.Habitat),
			Diet:          strings.TrimSpace(a.Diet),
			InStock:       a.InStock,
			StockQuantity: a.StockQuantity,
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
