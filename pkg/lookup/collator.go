package lookup

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation locale of the bundled dataset
const DefaultLocale = "ja"

// Collator compares day labels the way a reader of the locale orders them.
// A nil Collator falls back to byte order.
type Collator struct {
	mu     sync.Mutex // collate.Collator keeps internal buffers
	c      *collate.Collator
	locale language.Tag
}

// NewCollator builds a collator for locale. With numeric set, digit runs are
// compared by value so "8月9日" sorts before "8月10日".
func NewCollator(locale string, numeric bool) (*Collator, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid collation locale %q: %w", locale, err)
	}

	var opts []collate.Option
	if numeric {
		opts = append(opts, collate.Numeric)
	}
	return &Collator{c: collate.New(tag, opts...), locale: tag}, nil
}

// Locale returns the collator's language tag
func (c *Collator) Locale() string {
	if c == nil {
		return ""
	}
	return c.locale.String()
}

// Compare returns -1, 0 or 1 like strings.Compare
func (c *Collator) Compare(a, b string) int {
	if c == nil {
		return strings.Compare(a, b)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}
