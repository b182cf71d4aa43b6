// Package palette provides the cyclic symbols and random colors markers are
// drawn with.
package palette

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/magcot/magcot/pkg/core"
)

//go:embed ordinaldata/*.txt
var ordinalData embed.FS

// DefaultOrdinalStyle is used when no style is configured.
const DefaultOrdinalStyle = "qianziwen"

// Sequence is an endless source of strings.
type Sequence interface {
	Next() string
}

// Ordinals cycles through the characters of an ordinal series.
type Ordinals struct {
	symbols []string
	next    int
}

// NewOrdinals loads the series named style.
func NewOrdinals(style string) (*Ordinals, error) {
	data, err := ordinalData.ReadFile(path.Join("ordinaldata", style+".txt"))
	if err != nil {
		return nil, &core.NotFoundError{What: "ordinal style", Key: style}
	}
	var symbols []string
	for _, r := range strings.TrimSpace(string(data)) {
		symbols = append(symbols, string(r))
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: ordinal style %q is empty", core.ErrValidation, style)
	}
	return &Ordinals{symbols: symbols}, nil
}

// Next returns the next symbol, starting over after the last one.
func (o *Ordinals) Next() string {
	s := o.symbols[o.next]
	o.next = (o.next + 1) % len(o.symbols)
	return s
}

// Len is the length of one cycle.
func (o *Ordinals) Len() int {
	return len(o.symbols)
}

// OrdinalStyles lists the available series.
func OrdinalStyles() []string {
	entries, _ := ordinalData.ReadDir("ordinaldata")
	styles := make([]string, 0, len(entries))
	for _, e := range entries {
		styles = append(styles, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(styles)
	return styles
}
