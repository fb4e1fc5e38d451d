package lessons

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// catalogFile is the on-disk shape of catalog.yaml.
type catalogFile struct {
	Lessons []Lesson `yaml:"lessons"`
}

// catalog holds the lesson DAG with precomputed indices.
type catalog struct {
	lessons    []Lesson // sorted by Order
	byID       map[string]*Lesson
	dependents map[string][]string
}

// c is the package-level catalog, decoded from the embedded YAML at init.
var c *catalog

func init() {
	ls, err := parseCatalog(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("lessons: embedded catalog: %v", err))
	}
	c = buildCatalog(ls)
}

// parseCatalog decodes catalog YAML. Structural checks are left to
// validateLessons so a broken catalog is reported in full.
func parseCatalog(data []byte) ([]Lesson, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Lessons) == 0 {
		return nil, fmt.Errorf("catalog has no lessons")
	}
	return f.Lessons, nil
}

func buildCatalog(ls []Lesson) *catalog {
	sorted := slices.Clone(ls)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	cat := &catalog{
		lessons:    sorted,
		byID:       make(map[string]*Lesson, len(sorted)),
		dependents: make(map[string][]string),
	}
	for i := range cat.lessons {
		cat.byID[cat.lessons[i].ID] = &cat.lessons[i]
	}
	for i := range cat.lessons {
		for _, prereqID := range cat.lessons[i].Prerequisites {
			cat.dependents[prereqID] = append(cat.dependents[prereqID], cat.lessons[i].ID)
		}
	}
	return cat
}

// Get returns a lesson by ID.
func Get(id string) (Lesson, error) {
	l, ok := c.byID[id]
	if !ok {
		return Lesson{}, fmt.Errorf("lesson not found: %q", id)
	}
	return *l, nil
}

// All returns every lesson in catalog order.
func All() []Lesson {
	return slices.Clone(c.lessons)
}

// IDs returns every lesson ID in catalog order.
func IDs() []string {
	ids := make([]string, len(c.lessons))
	for i, l := range c.lessons {
		ids[i] = l.ID
	}
	return ids
}

// Prerequisites returns the direct prerequisite lessons for a lesson ID.
func Prerequisites(id string) []Lesson {
	l, ok := c.byID[id]
	if !ok {
		return nil
	}
	result := make([]Lesson, 0, len(l.Prerequisites))
	for _, prereqID := range l.Prerequisites {
		if p, ok := c.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns lessons that directly require the given lesson.
func Dependents(id string) []Lesson {
	depIDs := c.dependents[id]
	result := make([]Lesson, 0, len(depIDs))
	for _, depID := range depIDs {
		if l, ok := c.byID[depID]; ok {
			result = append(result, *l)
		}
	}
	return result
}

// IsUnlocked reports whether every prerequisite of the lesson is in the
// completed set. Unknown IDs are never unlocked.
func IsUnlocked(id string, completed map[string]bool) bool {
	l, ok := c.byID[id]
	if !ok {
		return false
	}
	for _, prereqID := range l.Prerequisites {
		if !completed[prereqID] {
			return false
		}
	}
	return true
}

// Available returns the lessons that are unlocked but not yet completed,
// in catalog order.
func Available(completed map[string]bool) []Lesson {
	var result []Lesson
	for _, l := range c.lessons {
		if !completed[l.ID] && IsUnlocked(l.ID, completed) {
			result = append(result, l)
		}
	}
	return result
}

// Validate checks the embedded catalog for structural issues.
func Validate() error {
	return validateLessons(c.lessons)
}
