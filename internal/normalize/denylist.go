package normalize

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Denylist holds hostname substrings that must never be fetched. A domain is
// denied when any entry appears inside its www-stripped, lowercased form, so
// the entry "linkedin.com" also rejects "ca.linkedin.com".
type Denylist struct {
	entries []string
}

// NewDenylist builds a Denylist from raw entries, dropping blanks and
// comment lines.
func NewDenylist(entries []string) *Denylist {
	d := &Denylist{}
	for _, raw := range entries {
		value := strings.ToLower(strings.TrimSpace(raw))
		if value == "" || strings.HasPrefix(value, "#") {
			continue
		}
		d.entries = append(d.entries, value)
	}
	return d
}

// LoadDenylist reads one entry per line from path. A missing file yields an
// empty denylist rather than an error.
func LoadDenylist(path string) (*Denylist, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDenylist(nil), nil
		}
		return nil, fmt.Errorf("open denylist %s: %w", path, err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entries = append(entries, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read denylist %s: %w", path, err)
	}
	return NewDenylist(entries), nil
}

// Denied reports whether domain matches any denylist entry.
func (d *Denylist) Denied(domain string) bool {
	if d == nil || domain == "" {
		return false
	}
	normalized := strings.TrimPrefix(strings.ToLower(domain), "www.")
	for _, entry := range d.entries {
		if strings.Contains(normalized, entry) {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (d *Denylist) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}
