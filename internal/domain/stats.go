package domain

// ApplyResult folds one finished quiz into cumulative stats. Averages are
// recomputed from sum/count so they can never drift from their counters.
func (s Stats) ApplyResult(r QuizResult) Stats {
	next := s
	next.TotalQuizzes++
	next.TotalScore += r.Score
	next.TotalTimeSpent += r.TimeSpent
	next.AverageScore = float64(next.TotalScore) / float64(next.TotalQuizzes)

	next.SubjectStats = make(map[Subject]SubjectStats, len(s.SubjectStats)+1)
	for k, v := range s.SubjectStats {
		next.SubjectStats[k] = v
	}
	subject := next.SubjectStats[r.Subject]
	subject.QuizzesTaken++
	subject.TotalScore += r.Score
	subject.AverageScore = float64(subject.TotalScore) / float64(subject.QuizzesTaken)
	next.SubjectStats[r.Subject] = subject

	return next
}
