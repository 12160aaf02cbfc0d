package profile

import "time"

// SetTitle returns a copy of current with the title replaced. Total: any
// string is accepted.
func SetTitle(current Record, title string) Record {
	current.Achievements = cloneAchievements(current.Achievements)
	current.Title = title
	return current
}

// SetDescription returns a copy of current with the description replaced.
func SetDescription(current Record, description string) Record {
	current.Achievements = cloneAchievements(current.Achievements)
	current.Description = description
	return current
}

// AddAchievement appends a new achievement with the supplied id and date and
// returns the updated record plus the appended entry. Callers own id
// generation so the transition stays pure.
func AddAchievement(current Record, id, title, description string, date time.Time) (Record, Achievement) {
	entry := Achievement{
		ID:          id,
		Title:       title,
		Description: description,
		Date:        date,
	}
	next := current
	next.Achievements = append(cloneAchievements(current.Achievements), entry)
	return next, entry
}

// RemoveAchievement returns a copy of current without the achievement whose
// id matches. A missing id is a no-op, not an error; the boolean reports
// whether an entry was removed.
func RemoveAchievement(current Record, id string) (Record, bool) {
	next := current
	filtered := make([]Achievement, 0, len(current.Achievements))
	removed := false
	for _, a := range current.Achievements {
		if a.ID == id {
			removed = true
			continue
		}
		filtered = append(filtered, a)
	}
	next.Achievements = filtered
	return next, removed
}

func cloneAchievements(list []Achievement) []Achievement {
	if list == nil {
		return nil
	}
	out := make([]Achievement, len(list))
	copy(out, list)
	return out
}
