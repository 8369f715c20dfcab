package keyword

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// fileSchema is the on-disk TOML layout.
type fileSchema struct {
	IgnoreCase bool              `toml:"ignore_case"`
	Keywords   map[string]string `toml:"keywords"`
}

// Load reads a keyword configuration, starting from the defaults and
// overriding only the keys the file names. Unknown keys are rejected so a
// typo does not silently leave a keyword on its default.
func Load(r io.Reader) (Table, error) {
	var schema fileSchema
	meta, err := toml.NewDecoder(r).Decode(&schema)
	if err != nil {
		return Table{}, fmt.Errorf("keyword config: %w", err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Table{}, fmt.Errorf("keyword config: unknown key %q", undec[0].String())
	}

	t := Default()
	t.IgnoreCase = schema.IgnoreCase
	for key, phrase := range schema.Keywords {
		if _, ok := t.byKey[key]; !ok {
			return Table{}, fmt.Errorf("keyword config: unknown keyword %q", key)
		}
		t = t.With(key, phrase)
	}
	return t, nil
}

// LoadFile reads a keyword configuration from a TOML file.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return Load(f)
}

// Save writes the table as TOML.
func (t Table) Save(w io.Writer) error {
	schema := fileSchema{
		IgnoreCase: t.IgnoreCase,
		Keywords:   make(map[string]string, len(t.entries)),
	}
	for _, e := range t.entries {
		schema.Keywords[e.Key] = e.Phrase
	}
	return toml.NewEncoder(w).Encode(schema)
}

// SaveFile writes the table to a TOML file.
func (t Table) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Save(f)
}
