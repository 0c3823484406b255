package http

import (
	"edquiz-service/internal/app"
	"edquiz-service/internal/domain"
)

// QuestionView is a question as shown during play: no correct index, no
// explanation. Those appear only in the post-finish review.
type QuestionView struct {
	ID         string            `json:"id"`
	Prompt     string            `json:"prompt"`
	Options    []string          `json:"options"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Topic      string            `json:"topic"`
}

// SessionView is the live state of a quiz session.
type SessionView struct {
	SessionID  string            `json:"sessionId"`
	Subject    domain.Subject    `json:"subject"`
	Difficulty domain.Difficulty `json:"difficulty"`
	State      string            `json:"state"`
	Index      int               `json:"index"`
	Total      int               `json:"total"`
	Answered   int               `json:"answered"`
	Remaining  int               `json:"remainingSeconds"`
	Question   QuestionView      `json:"question"`
	Selected   *int              `json:"selected,omitempty"`
}

// ReviewItem pairs a question with the user's pick for the post-finish
// walkthrough.
type ReviewItem struct {
	Question       domain.Question `json:"question"`
	SelectedOption int             `json:"selectedOption"`
	Correct        bool            `json:"correct"`
	Answered       bool            `json:"answered"`
}

// FinishView is the finish response: the scored outcome plus the review.
type FinishView struct {
	app.FinishOutcome
	Review []ReviewItem `json:"review"`
}

func questionView(q domain.Question) QuestionView {
	return QuestionView{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Topic:      q.Topic,
	}
}

func sessionView(session *app.Session) SessionView {
	question, index := session.Current()
	view := SessionView{
		SessionID:  session.ID(),
		Subject:    session.Subject(),
		Difficulty: session.Difficulty(),
		State:      session.State().String(),
		Index:      index,
		Total:      session.Len(),
		Answered:   session.Answered(),
		Remaining:  int(session.Remaining().Seconds()),
		Question:   questionView(question),
	}
	if answer, ok := session.AnswerAt(index); ok {
		selected := answer.SelectedOption
		view.Selected = &selected
	}
	return view
}

func reviewItems(session *app.Session) []ReviewItem {
	questions := session.Questions()
	items := make([]ReviewItem, 0, len(questions))
	for i, q := range questions {
		item := ReviewItem{Question: q, SelectedOption: -1}
		if answer, ok := session.AnswerAt(i); ok {
			item.SelectedOption = answer.SelectedOption
			item.Correct = answer.Correct
			item.Answered = true
		}
		items = append(items, item)
	}
	return items
}
