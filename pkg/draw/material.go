package draw

import (
	"slices"

	"github.com/matzehuels/xui/pkg/style"
)

// MaterialCache de-duplicates materials. Names are derived from the color,
// so equal materials share one name across caches and runs. The zero value
// is ready to use.
type MaterialCache struct {
	names map[Material]string
	order []Material
}

// Add registers m and returns its name.
func (c *MaterialCache) Add(m Material) string {
	if !m.Color.Valid {
		m.Color = style.RGB(0, 0, 0)
	}
	if name, ok := c.names[m]; ok {
		return name
	}
	if c.names == nil {
		c.names = make(map[Material]string)
	}
	name := "mat-" + m.Color.Hex()[1:]
	c.names[m] = name
	c.order = append(c.order, m)
	return name
}

// Name returns the name of a registered material.
func (c *MaterialCache) Name(m Material) (string, bool) {
	name, ok := c.names[m]
	return name, ok
}

// Materials returns the registered materials in insertion order.
func (c *MaterialCache) Materials() []Material {
	return slices.Clone(c.order)
}

// Len returns the number of distinct materials.
func (c *MaterialCache) Len() int { return len(c.order) }
