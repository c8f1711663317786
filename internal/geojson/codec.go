package geojson

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// Decode reads a FeatureCollection from r.
func Decode(r io.Reader) (*Collection, error) {
	var c Collection
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, eris.Wrap(err, "geojson: decode collection")
	}
	return &c, nil
}

// Encode writes the collection to w, indented, with non-ASCII text emitted
// as-is rather than escaped.
func Encode(w io.Writer, c *Collection) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return eris.Wrap(err, "geojson: encode collection")
	}
	return nil
}

// Load reads a FeatureCollection from a file.
func Load(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geojson: open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes a FeatureCollection to a file.
func Save(path string, c *Collection) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "geojson: create %s", path)
	}
	if err := Encode(f, c); err != nil {
		f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "geojson: close %s", path)
}
