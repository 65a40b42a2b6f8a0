package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/util"
)

// NormalizeAnswers parses raw submitted answers into a question-id keyed map.
// Keys must be string-encoded integers; a single bad key fails the whole
// request so a submission is never partially scored. Numeric values stay
// numeric, everything else is coerced to a string.
func NormalizeAnswers(raw map[string]interface{}) (map[uint]interface{}, error) {
	normalized := make(map[uint]interface{}, len(raw))
	for key, value := range raw {
		questionID, err := strconv.ParseUint(strings.TrimSpace(key), 10, 32)
		if err != nil {
			return nil, util.Validationf("invalid question id %q in answers", key)
		}
		switch v := value.(type) {
		case nil:
			continue
		case float64, json.Number, string:
			normalized[uint(questionID)] = v
		default:
			normalized[uint(questionID)] = fmt.Sprint(v)
		}
	}
	return normalized, nil
}

// ScoreQuiz grades a submission against the quiz's authoritative answer data
// and returns the total score. Pure and deterministic: each question is
// graded independently, credit is all-or-nothing per question, and questions
// without a submitted value score zero. The quiz must be loaded with answers.
func ScoreQuiz(quiz *model.Quiz, answers map[uint]interface{}) int {
	total := 0
	for _, question := range quiz.Questions {
		value, ok := answers[question.ID]
		if !ok {
			continue
		}
		total += scoreQuestion(&question, value)
	}
	return total
}

func scoreQuestion(question *model.Question, value interface{}) int {
	switch {
	case question.Type.ChoiceBased():
		answerID, ok := answerIDValue(value)
		if !ok {
			// a non-numeric value for a choice question is worth zero,
			// not an error
			return 0
		}
		for _, a := range question.Answers {
			if a.ID == answerID && a.IsCorrect {
				return question.Points
			}
		}
		return 0
	case question.Type == model.ShortAnswer:
		submitted := normalizeText(FormatAnswerValue(value))
		if submitted == "" {
			return 0
		}
		for _, a := range question.Answers {
			if normalizeText(a.Text) == submitted {
				return question.Points
			}
		}
		return 0
	default:
		// unsupported question types never score
		return 0
	}
}

// answerIDValue extracts an answer id from the submitted value, accepting
// both numeric and numeric-string forms.
func answerIDValue(value interface{}) (uint, bool) {
	switch v := value.(type) {
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return 0, false
		}
		return uint(v), true
	case json.Number:
		id, err := strconv.ParseUint(v.String(), 10, 32)
		if err != nil {
			return 0, false
		}
		return uint(id), true
	case string:
		id, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return 0, false
		}
		return uint(id), true
	default:
		return 0, false
	}
}

// FormatAnswerValue renders a normalized value in the string form used for
// persistence and short-answer comparison. Integral numbers print without a
// decimal point.
func FormatAnswerValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
