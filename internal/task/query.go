package task

import "strings"

// Search returns tasks whose title or description contains keyword. Matching
// is case sensitive and an empty keyword matches every task.
func (s *Store) Search(keyword string) []Task {
	return s.filter(func(t Task) bool {
		return strings.Contains(t.Title, keyword) || strings.Contains(t.Description, keyword)
	})
}

func (s *Store) FilterByTag(tag string) []Task {
	return s.filter(func(t Task) bool { return t.HasTag(tag) })
}

func (s *Store) FilterByStatus(status Status) []Task {
	return s.filter(func(t Task) bool { return t.Status == status })
}

// PriorityStats counts tasks per priority. Priorities without tasks are absent.
func (s *Store) PriorityStats() map[Priority]int {
	stats := map[Priority]int{}
	for _, e := range s.entries {
		stats[e.Task.Priority]++
	}
	return stats
}

// DeadlineCalendar counts tasks per raw deadline string. Deadlines are not
// parsed, so "2030-01-01 09:00" and "2030-01-01 9:00" are separate keys.
func (s *Store) DeadlineCalendar() map[string]int {
	counts := map[string]int{}
	for _, e := range s.entries {
		counts[e.Task.Deadline]++
	}
	return counts
}

func (s *Store) filter(keep func(Task) bool) []Task {
	out := []Task{}
	for _, e := range s.entries {
		if keep(e.Task) {
			out = append(out, e.Task.Clone())
		}
	}
	return out
}
