package lessons

import (
	"fmt"
	"strings"
)

// validateLessons performs all structural checks on the given lesson set.
// Returns a combined error describing all problems found, or nil if valid.
func validateLessons(ls []Lesson) error {
	var errs []string

	idSet := make(map[string]bool, len(ls))
	orderSet := make(map[int]string, len(ls))

	for _, l := range ls {
		if l.ID == "" {
			errs = append(errs, fmt.Sprintf("lesson #%d has an empty ID", l.Number))
			continue
		}
		if idSet[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson ID: %q", l.ID))
		}
		idSet[l.ID] = true

		if other, ok := orderSet[l.Order]; ok {
			errs = append(errs, fmt.Sprintf("lessons %q and %q share order %d", other, l.ID, l.Order))
		}
		orderSet[l.Order] = l.ID
	}

	for _, l := range ls {
		for _, prereqID := range l.Prerequisites {
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("lesson %q references nonexistent prerequisite %q", l.ID, prereqID))
			}
		}
	}

	// Cycle check (Kahn's algorithm)
	inDegree := make(map[string]int, len(ls))
	adjList := make(map[string][]string)
	for _, l := range ls {
		inDegree[l.ID] = len(l.Prerequisites)
		for _, prereqID := range l.Prerequisites {
			adjList[prereqID] = append(adjList[prereqID], l.ID)
		}
	}

	var queue []string
	for _, l := range ls {
		if inDegree[l.ID] == 0 {
			queue = append(queue, l.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(ls) {
		var cycleNodes []string
		for _, l := range ls {
			if inDegree[l.ID] > 0 {
				cycleNodes = append(cycleNodes, l.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving lessons: %s", strings.Join(cycleNodes, ", ")))
	}

	hasRoot := false
	for _, l := range ls {
		if len(l.Prerequisites) == 0 {
			hasRoot = true
			break
		}
	}
	if !hasRoot {
		errs = append(errs, "no root lessons found (at least one lesson must have no prerequisites)")
	}

	for _, l := range ls {
		if l.ExerciseTotal <= 0 {
			errs = append(errs, fmt.Sprintf("lesson %q: exercise_total must be > 0, got %d", l.ID, l.ExerciseTotal))
		}
		if l.EstimatedMins <= 0 {
			errs = append(errs, fmt.Sprintf("lesson %q: estimated_mins must be > 0, got %d", l.ID, l.EstimatedMins))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("lesson catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
