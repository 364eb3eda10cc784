package task

import "time"

// SeedTasks are the starter tasks shown on first launch.
func SeedTasks(now time.Time, newID func() string) []Task {
	return []Task{
		{ID: newID(), Title: "Road trip #weekend", Priority: PriorityMedium, Tags: []string{"weekend"}},
		{ID: newID(), Title: "Prepare presentation #work", Due: now.AddDate(0, 0, 1).Format(DateLayout), Priority: PriorityHigh, Tags: []string{"work"}},
		{ID: newID(), Title: "Gym session #health", Done: true, Priority: PriorityLow, Tags: []string{"health"}},
	}
}
