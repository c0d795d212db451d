package game

// Summary is the result report derived from an answer log.
type Summary struct {
	Correct   int
	Incorrect int
	Skipped   int
	Total     int

	// TotalTime is the sum of TimeTaken in seconds.
	TotalTime int

	// Accuracy is Correct/Total, 0 for an empty log.
	Accuracy float64

	// Categories is ordered by first appearance in the log.
	Categories []CategoryBreakdown
}

// CategoryBreakdown holds the counts for one category label.
type CategoryBreakdown struct {
	Category  string
	Correct   int
	Incorrect int
	Skipped   int
	Total     int
	TotalTime int
}

// BuildSummary derives a Summary from log. It does not modify log.
func BuildSummary(log []AnswerRecord) Summary {
	var s Summary
	index := make(map[string]int)

	for _, rec := range log {
		i, ok := index[rec.Category]
		if !ok {
			i = len(s.Categories)
			index[rec.Category] = i
			s.Categories = append(s.Categories, CategoryBreakdown{Category: rec.Category})
		}
		cb := &s.Categories[i]

		switch {
		case rec.Skipped:
			s.Skipped++
			cb.Skipped++
		case rec.Correct:
			s.Correct++
			cb.Correct++
		default:
			s.Incorrect++
			cb.Incorrect++
		}
		s.Total++
		cb.Total++
		s.TotalTime += rec.TimeTaken
		cb.TotalTime += rec.TimeTaken
	}

	if s.Total > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Total)
	}
	return s
}
