package core

import (
	"strconv"
	"strings"

	"landscapecore/pkg/domain"
)

// QuestionnaireResponses returns the stored answers keyed by question id.
func (s *Service) QuestionnaireResponses() map[int]string {
	responses, _ := loadValue[map[int]string](s, keyQuestionnaire)
	if responses == nil {
		responses = make(map[int]string)
	}
	return responses
}

// AnswerQuestion records one questionnaire answer. Percentage questions only
// accept the fixed bucket tokens; text questions accept any non-empty text.
func (s *Service) AnswerQuestion(questionID int, answer string) error {
	start := s.nowFn()
	err := s.answerQuestion(questionID, answer)
	s.observe("questionnaire_answer", start, err)
	return err
}

func (s *Service) answerQuestion(questionID int, answer string) error {
	question, ok := domain.FindQuestion(questionID)
	if !ok {
		return ErrNotFound{Kind: "question", ID: strconv.Itoa(questionID)}
	}
	switch question.Response {
	case domain.ResponsePercentage:
		if !domain.ValidPercentageBucket(answer) {
			return ValidationError{Field: "answer", Message: "must be one of the percentage buckets"}
		}
	case domain.ResponseText:
		if strings.TrimSpace(answer) == "" {
			return ValidationError{Field: "answer", Message: "required"}
		}
	}
	responses := s.QuestionnaireResponses()
	responses[questionID] = answer
	return s.save(keyQuestionnaire, responses)
}
