package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// maxRows caps how many indexed rows one submission may carry, regardless of
// the submitted count value.
const maxRows = 50

// Form is one submitted step payload: flattened field name to value.
// Repeated steps use a count field plus indexed names (skill_name_0,
// skill_name_1, ...).
type Form map[string]string

// Get returns the trimmed value for a field.
func (f Form) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Has reports whether the field was submitted at all, even blank.
func (f Form) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Count reads a row-count field, clamped to [0, maxRows].
func (f Form) Count(key string) int {
	n, err := strconv.Atoi(f.Get(key))
	if err != nil || n < 0 {
		return 0
	}
	if n > maxRows {
		return maxRows
	}
	return n
}

// Bool reads a checkbox-style field.
func (f Form) Bool(key string) bool {
	switch strings.ToLower(f.Get(key)) {
	case "true", "on", "yes", "1":
		return true
	}
	return false
}

// indexed returns the value of an indexed field, e.g. ("skill_name", 2) →
// form["skill_name_2"].
func (f Form) indexed(key string, i int) string {
	return f.Get(fmt.Sprintf("%s_%d", key, i))
}

// indexedBool reads an indexed checkbox-style field.
func (f Form) indexedBool(key string, i int) bool {
	return f.Bool(fmt.Sprintf("%s_%d", key, i))
}

// collectBullets scans the bullet_{i}_{j} family for row i. The scan ends at
// the first missing key. A key that exists but holds a blank value also
// ends it: blanks mean "no more bullets", never "skip and keep going",
// which would silently reorder later bullets.
func (f Form) collectBullets(i int) []types.BulletPoint {
	bullets := []types.BulletPoint{}
	for j := 0; ; j++ {
		key := fmt.Sprintf("bullet_%d_%d", i, j)
		if !f.Has(key) {
			break
		}
		desc := f.Get(key)
		if desc == "" {
			break
		}
		bullets = append(bullets, types.BulletPoint{Description: desc})
	}
	return bullets
}
