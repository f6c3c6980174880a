// Package footprint compares the memory used by bitmap-tracked untagged
// slots against arrays of tagged optionals.
package footprint

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/untagged"
	"github.com/rawbytedev/untagged/pkg/slots"
)

type Config struct {
	Lengths []int    `yaml:"lengths"`
	Kinds   []string `yaml:"kinds"`
}

func DefaultConfig() Config {
	return Config{
		Lengths: []int{1, 64, 1024},
		Kinds:   []string{"bool", "u8", "u16", "u32", "u64"},
	}
}

// LoadConfig reads a YAML config. Empty fields take their defaults.
func LoadConfig(p string) (Config, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	def := DefaultConfig()
	if len(c.Lengths) == 0 {
		c.Lengths = def.Lengths
	}
	if len(c.Kinds) == 0 {
		c.Kinds = def.Kinds
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	for _, n := range c.Lengths {
		if n <= 0 {
			return errors.Errorf("length must be positive, got %d", n)
		}
	}
	for _, k := range c.Kinds {
		if _, ok := kinds[k]; !ok {
			return errors.Errorf("unknown kind %q", k)
		}
	}
	return nil
}

type kind struct {
	size, align             func() uintptr
	taggedSize, taggedAlign func() uintptr
	untagged, tagged        func(n int) uintptr
}

func kindOf[T any]() kind {
	return kind{
		size:        untagged.Size[T],
		align:       untagged.Align[T],
		taggedSize:  slots.TaggedSize[T],
		taggedAlign: slots.TaggedAlign[T],
		untagged:    slots.Footprint[T],
		tagged:      slots.TaggedFootprint[T],
	}
}

var kinds = map[string]kind{
	"bool": kindOf[bool](),
	"u8":   kindOf[uint8](),
	"i8":   kindOf[int8](),
	"u16":  kindOf[uint16](),
	"i16":  kindOf[int16](),
	"u32":  kindOf[uint32](),
	"i32":  kindOf[int32](),
	"u64":  kindOf[uint64](),
	"i64":  kindOf[int64](),
	"f32":  kindOf[float32](),
	"f64":  kindOf[float64](),
	"c64":  kindOf[complex64](),
	"c128": kindOf[complex128](),
}

// Kinds returns the names of all supported element kinds, sorted.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type Entry struct {
	Kind     string  `yaml:"kind"`
	Length   int     `yaml:"length"`
	Untagged uint64  `yaml:"untagged_bytes"`
	Tagged   uint64  `yaml:"tagged_bytes"`
	Saved    int64   `yaml:"saved_bytes"`
	Ratio    float64 `yaml:"ratio"`
}

type Layout struct {
	Kind        string `yaml:"kind"`
	Size        uint64 `yaml:"size"`
	Align       uint64 `yaml:"align"`
	TaggedSize  uint64 `yaml:"tagged_size"`
	TaggedAlign uint64 `yaml:"tagged_align"`
}

// Report computes one Entry per kind and length, in config order.
func Report(c Config) ([]Entry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var out []Entry
	for _, name := range c.Kinds {
		k := kinds[name]
		for _, n := range c.Lengths {
			u, t := uint64(k.untagged(n)), uint64(k.tagged(n))
			out = append(out, Entry{
				Kind:     name,
				Length:   n,
				Untagged: u,
				Tagged:   t,
				Saved:    int64(t) - int64(u),
				Ratio:    float64(u) / float64(t),
			})
		}
	}
	return out, nil
}

// Layouts returns the per-element layout of each configured kind.
func Layouts(c Config) ([]Layout, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]Layout, 0, len(c.Kinds))
	for _, name := range c.Kinds {
		k := kinds[name]
		out = append(out, Layout{
			Kind:        name,
			Size:        uint64(k.size()),
			Align:       uint64(k.align()),
			TaggedSize:  uint64(k.taggedSize()),
			TaggedAlign: uint64(k.taggedAlign()),
		})
	}
	return out, nil
}

// WriteYAML encodes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encoding report")
	}
	return enc.Close()
}

func WriteEntries(w io.Writer, entries []Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tLENGTH\tUNTAGGED\tTAGGED\tSAVED\tRATIO")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.3f\n", e.Kind, e.Length, e.Untagged, e.Tagged, e.Saved, e.Ratio)
	}
	return tw.Flush()
}

func WriteLayouts(w io.Writer, layouts []Layout) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tSIZE\tALIGN\tTAGGED SIZE\tTAGGED ALIGN")
	for _, l := range layouts {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", l.Kind, l.Size, l.Align, l.TaggedSize, l.TaggedAlign)
	}
	return tw.Flush()
}
