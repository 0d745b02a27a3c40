// Package seed loads the initial product catalog.
package seed

import (
	"bytes"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
)

// File is the on-disk layout of a catalog seed.
//
//	products:
//	  - id: 1
//	    name: Apples
//	    price: "120"
type File struct {
	Products []Entry `yaml:"products"`
}

type Entry struct {
	ID    int64  `yaml:"id"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// Default returns the storefront's built-in produce list.
func Default() []*domain.Product {
	entries := []struct {
		name  string
		price int64
	}{
		{"Apples", 120},
		{"Bananas", 60},
		{"Carrots", 40},
		{"Potatoes", 30},
		{"Tomatoes", 80},
		{"Onions", 35},
		{"Cucumbers", 45},
		{"Oranges", 100},
		{"Grapes", 150},
		{"Watermelon", 90},
		{"Cabbage", 50},
		{"Bell Peppers", 70},
	}
	products := make([]*domain.Product, 0, len(entries))
	for i, e := range entries {
		products = append(products, &domain.Product{
			ID:    int64(i + 1),
			Name:  e.name,
			Price: decimal.NewFromInt(e.price),
		})
	}
	return products
}

// LoadFile reads a YAML seed. An empty path yields Default().
func LoadFile(path string) ([]*domain.Product, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML seed. IDs left at zero are numbered after the
// highest explicit ID; duplicate IDs are rejected.
func Parse(raw []byte) ([]*domain.Product, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}

	var maxID int64
	for _, e := range file.Products {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	seen := make(map[int64]struct{}, len(file.Products))
	products := make([]*domain.Product, 0, len(file.Products))
	for i, e := range file.Products {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog seed entry %d: price %q: %w", i, e.Price, err)
		}
		id := e.ID
		if id == 0 {
			maxID++
			id = maxID
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("catalog seed entry %d: duplicate id %d", i, id)
		}
		seen[id] = struct{}{}
		product, err := domain.NewProduct(id, e.Name, price)
		if err != nil {
			return nil, fmt.Errorf("catalog seed entry %d: %w", i, err)
		}
		products = append(products, product)
	}
	return products, nil
}
