package promo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/shopspring/decimal"
)

var ErrInvalidPromoCode = errors.New("promo code is not valid")

// falsePositiveRate for the bloom prefilter; misses fall through to the map
const falsePositiveRate = 0.01

// Resolver maps promo codes to discount percentages.
//
// Codes are 8-10 characters. Lookups hit a bloom filter first so the common
// case of a mistyped or made-up code is rejected without touching the code
// table. The resolver is safe for concurrent use.
type Resolver struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
	codes  map[string]decimal.Decimal
}

// NewResolver creates an empty resolver; every code is invalid until loaded
func NewResolver() *Resolver {
	return &Resolver{
		codes: make(map[string]decimal.Decimal),
	}
}

// Load replaces the code table with the given code -> discount-percent set
func (r *Resolver) Load(codes map[string]decimal.Decimal) {
	filter := bloom.NewWithEstimates(uint(len(codes))+1, falsePositiveRate)
	table := make(map[string]decimal.Decimal, len(codes))
	for code, pct := range codes {
		filter.AddString(code)
		table[code] = pct
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = filter
	r.codes = table
}

// LoadFromReader parses "CODE PERCENT" lines (blank lines and #-comments
// skipped) and loads them.
func (r *Resolver) LoadFromReader(reader io.Reader) error {
	codes := make(map[string]decimal.Decimal)

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("malformed promo line %q", line)
		}

		pct, err := decimal.NewFromString(fields[1])
		if err != nil {
			return fmt.Errorf("invalid discount for code %s: %w", fields[0], err)
		}
		codes[fields[0]] = pct
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading promo codes: %w", err)
	}

	r.Load(codes)
	return nil
}

// Resolve returns the discount percent for a code. A code is valid if it
// has 8-10 characters and is present in the loaded table.
func (r *Resolver) Resolve(code string) (decimal.Decimal, error) {
	if len(code) < 8 || len(code) > 10 {
		return decimal.Zero, ErrInvalidPromoCode
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.filter == nil || !r.filter.TestString(code) {
		return decimal.Zero, ErrInvalidPromoCode
	}

	pct, ok := r.codes[code]
	if !ok {
		// Bloom false positive
		return decimal.Zero, ErrInvalidPromoCode
	}
	return pct, nil
}

// Size returns the number of loaded codes
func (r *Resolver) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.codes)
}
