package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
)

// ErrEmptyDocument is returned when a catalog document lists no animals.
var ErrEmptyDocument = errors.New("catalog document has no animals")

// Document is the YAML layout of a catalog file.
type Document struct {
	Version        string           `yaml:"version"`
	IdempotencyKey string           `yaml:"idempotency_key,omitempty"`
	Animals        []DocumentAnimal `yaml:"animals"`
}

// DocumentAnimal is one listing as written by catalog editors. Enum fields accept codes or display labels.
type DocumentAnimal struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Species       string `yaml:"species"`
	Category      string `yaml:"category"`
	Price         string `yaml:"price"`
	ImageURL      string `yaml:"image"`
	Description   string `yaml:"description"`
	CareLevel     string `yaml:"care_level"`
	Size          string `yaml:"size"`
	Lifespan      string `yaml:"lifespan"`
	Habitat       string `yaml:"habitat"`
	Diet          string `yaml:"diet"`
	InStock       bool   `yaml:"in_stock"`
	StockQuantity int    `yaml:"stock_quantity"`
}

// Decode parses a YAML catalog document into an import batch labelled with source.
func Decode(r io.Reader, source string) (catalogtypes.ImportCatalogInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return catalogtypes.ImportCatalogInput{}, fmt.Errorf("read catalog %s: %w", source, err)
	}
	return Parse(data, source)
}

// Parse is Decode for an in-memory document.
func Parse(data []byte, source string) (catalogtypes.ImportCatalogInput, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return catalogtypes.ImportCatalogInput{}, fmt.Errorf("%s: %w", source, ErrEmptyDocument)
		}
		return catalogtypes.ImportCatalogInput{}, fmt.Errorf("failed to parse catalog YAML %s: %w", source, err)
	}
	if len(doc.Animals) == 0 {
		return catalogtypes.ImportCatalogInput{}, fmt.Errorf("%s: %w", source, ErrEmptyDocument)
	}
	input := catalogtypes.ImportCatalogInput{
		Source:         source,
		IdempotencyKey: doc.IdempotencyKey,
		Animals:        make([]catalogtypes.UpsertAnimalInput, 0, len(doc.Animals)),
	}
	for _, a := range doc.Animals {
		input.Animals = append(input.Animals, catalogtypes.UpsertAnimalInput{
			ID:            a.ID,
			Name:          a.Name,
			Species:       a.Species,
			Category:      a.Category,
			Price:         a.Price,
			ImageURL:      a.ImageURL,
			Description:   a.Description,
			CareLevel:     a.CareLevel,
			Size:          a.Size,
			Lifespan:      a.Lifespan,
			Habitat:       a.Habitat,
			Diet:          a.Diet,
			InStock:       a.InStock,
			StockQuantity: a.StockQuantity,
		})
	}
	return input, nil
}

// Encode writes an import batch back out as a YAML document.
func Encode(w io.Writer, input catalogtypes.ImportCatalogInput) error {
	doc := Document{Version: "1", IdempotencyKey: input.IdempotencyKey}
	for _, a := range input.Animals {
		doc.Animals = append(doc.Animals, DocumentAnimal{
			ID:            a.ID,
			Name:          a.Name,
			Species:       a.Species,
			Category:      a.Category,
			Price:         a.Price,
			ImageURL:      a.ImageURL,
			Description:   a.Description,
			CareLevel:     a.CareLevel,
			Size:          a.Size,
			Lifespan:      a.Lifespan,
			Habitat:       a.Habitat,
			Diet:          a.Diet,
			InStock:       a.InStock,
			StockQuantity: a.StockQuantity,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
