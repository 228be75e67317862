package uid

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	oerrors "github.com/idsr/indgen/internal/errors"
)

// Supplier hands out fresh identifiers.
type Supplier interface {
	Next() (string, error)
}

// Pool hands out the entries of a fixed list in order. The counter is
// guarded so a Pool stays unique even if shared between goroutines.
type Pool struct {
	mu    sync.Mutex
	codes []string
	next  int
	start int
}

var _ Supplier = (*Pool)(nil)

// NewPool creates a pool over codes starting at index start. The codes
// must be valid and distinct.
func NewPool(codes []string, start int) (*Pool, error) {
	if start < 0 || start > len(codes) {
		return nil, fmt.Errorf("%w: start index %d outside pool of %d", oerrors.ErrConfiguration, start, len(codes))
	}
	if err := check(codes); err != nil {
		return nil, err
	}
	return &Pool{codes: codes, next: start, start: start}, nil
}

func check(codes []string) error {
	seen := make(map[string]int, len(codes))
	for i, c := range codes {
		if !IsValid(c) {
			return fmt.Errorf("%w: entry %d %q is not a valid identifier", oerrors.ErrParse, i, c)
		}
		if j, dup := seen[c]; dup {
			return fmt.Errorf("%w: entry %d %q duplicates entry %d", oerrors.ErrParse, i, c, j)
		}
		seen[c] = i
	}
	return nil
}

// Next returns the next unused identifier, or ErrPoolExhausted.
func (p *Pool) Next() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.next >= len(p.codes) {
		return "", fmt.Errorf("%w: all %d entries used", oerrors.ErrPoolExhausted, len(p.codes))
	}
	id := p.codes[p.next]
	p.next++
	return id, nil
}

// Remaining returns how many identifiers can still be handed out.
func (p *Pool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.codes) - p.next
}

// Used returns how many identifiers this pool has handed out.
func (p *Pool) Used() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next - p.start
}

// Position returns the index of the next identifier to be handed out.
// Pass it as the start of the following run to continue the pool.
func (p *Pool) Position() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next
}

// Reserve fails with ErrPoolExhausted unless at least n identifiers remain.
func (p *Pool) Reserve(n int) error {
	if rem := p.Remaining(); rem < n {
		return &oerrors.DetailError{
			Type:    "identifier pool exhausted",
			Message: fmt.Sprintf("run needs %d identifiers but only %d remain", n, rem),
			Hint:    "Generate a larger pool with `indgen uid generate` or lower uidPool.start",
			Cause:   oerrors.ErrPoolExhausted,
		}
	}
	return nil
}

// Conflicts returns the identifiers not yet handed out that also appear
// in taken, in pool order.
func (p *Pool) Conflicts(taken []string) []string {
	set := make(map[string]struct{}, len(taken))
	for _, id := range taken {
		set[id] = struct{}{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var out []string
	for _, c := range p.codes[p.next:] {
		if _, ok := set[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// File is the on-disk pool shape.
type File struct {
	Codes []string `json:"codes"`
}

// LoadPool reads a pool file and returns a pool starting at start.
func LoadPool(path string, start int) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerrors.NewIOError(path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, oerrors.NewParseError(path, err)
	}

	pool, err := NewPool(f.Codes, start)
	if err != nil {
		return nil, fmt.Errorf("loading pool %s: %w", path, err)
	}
	return pool, nil
}

// WritePool writes codes as a pool file.
func WritePool(path string, codes []string) error {
	data, err := json.MarshalIndent(File{Codes: codes}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding pool: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return oerrors.NewIOError(path, err)
	}
	return nil
}
