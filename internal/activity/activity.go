package activity

// FullyCompletedDays counts dates on which every recorded routine was marked
// done. A date with no recorded entries does not count.
func FullyCompletedDays(history map[string]map[string]bool) int {
	days := 0
	for _, entries := range history {
		if len(entries) == 0 {
			continue
		}
		all := true
		for _, done := range entries {
			if !done {
				all = false
				break
			}
		}
		if all {
			days++
		}
	}
	return days
}
