// Package catalog loads the static course catalog of the program from YAML.
package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/gradebook/core/curriculum"
)

//go:embed sse.yaml
var embedded []byte

// Open returns the catalog named by the `catalogPath` setting, or the embedded one when unset.
func Open(conf *viper.Viper) (*curriculum.Catalog, error) {
	if path := conf.GetString("catalogPath"); path != "" {
		return Load(path)
	}
	return Default()
}

// Default decodes the embedded SSE catalog.
func Default() (*curriculum.Catalog, error) {
	cat, err := Decode(bytes.NewReader(embedded))
	if err != nil {
		return nil, errors.Wrap(err, "embedded catalog")
	}
	return cat, nil
}

// MustDefault is like Default but panics on error.
func MustDefault() *curriculum.Catalog {
	cat, err := Default()
	if err != nil {
		panic(err)
	}
	return cat
}

// Load reads and validates the catalog file at path.
func Load(path string) (*curriculum.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog")
	}
	defer func() { _ = f.Close() }()

	cat, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return cat, nil
}

// Decode reads a YAML catalog document from r and validates it.
// Unknown fields are rejected.
func Decode(r io.Reader) (*curriculum.Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cat curriculum.Catalog
	if err := dec.Decode(&cat); err != nil {
		if err == io.EOF {
			return nil, errors.New("empty catalog document")
		}
		return nil, errors.Wrap(err, "decoding catalog")
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}
