package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema is the markup contract with the host page: which elements are
// products and where each field lives inside one.
type Schema struct {
	Product string `yaml:"product"`
	Name    string `yaml:"name"`
	Price   string `yaml:"price"`
	Image   string `yaml:"image"`
	Link    string `yaml:"link"`
	IDAttr  string `yaml:"id_attr"`
}

func DefaultSchema() Schema {
	return Schema{
		Product: ".product",
		Name:    ".product-name",
		Price:   ".product-price",
		Image:   "img",
		Link:    "a",
		IDAttr:  "data-product-id",
	}
}

// LoadSchema reads a YAML schema file. Keys left out of the file keep their
// default selector.
func LoadSchema(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSchema(), fmt.Errorf("read schema: %w", err)
	}
	return ParseSchema(data)
}

func ParseSchema(data []byte) (Schema, error) {
	schema := DefaultSchema()
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return DefaultSchema(), fmt.Errorf("parse schema: %w", err)
	}
	if schema.Product == "" {
		return DefaultSchema(), fmt.Errorf("parse schema: product selector is empty")
	}
	return schema, nil
}
