package service

import (
	"testing"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/util"
)

func scoringQuiz() *model.Quiz {
	return &model.Quiz{
		Questions: []model.Question{
			{
				BaseModel: model.BaseModel{ID: 1},
				Type:      model.MultipleChoice,
				Points:    2,
				Answers: []model.Answer{
					{BaseModel: model.BaseModel{ID: 10}, Text: "Red"},
					{BaseModel: model.BaseModel{ID: 11}, Text: "Green", IsCorrect: true},
					{BaseModel: model.BaseModel{ID: 12}, Text: "Blue"},
				},
			},
			{
				BaseModel: model.BaseModel{ID: 2},
				Type:      model.TrueFalse,
				Points:    1,
				Answers: []model.Answer{
					{BaseModel: model.BaseModel{ID: 20}, Text: "True", IsCorrect: true},
					{BaseModel: model.BaseModel{ID: 21}, Text: "False"},
				},
			},
			{
				BaseModel: model.BaseModel{ID: 3},
				Type:      model.ShortAnswer,
				Points:    3,
				Answers: []model.Answer{
					{BaseModel: model.BaseModel{ID: 30}, Text: "Paris", IsCorrect: true},
				},
			},
		},
	}
}

func TestScoreQuiz(t *testing.T) {
	quiz := scoringQuiz()

	tests := []struct {
		name    string
		answers map[uint]interface{}
		want    int
	}{
		{
			name: "all correct",
			answers: map[uint]interface{}{
				1: float64(11),
				2: float64(20),
				3: "Paris",
			},
			want: 6,
		},
		{
			name: "numeric string answer id",
			answers: map[uint]interface{}{
				1: "11",
			},
			want: 2,
		},
		{
			name: "wrong choice scores zero",
			answers: map[uint]interface{}{
				1: float64(10),
				2: float64(21),
			},
			want: 0,
		},
		{
			name: "unknown answer id scores zero",
			answers: map[uint]interface{}{
				1: float64(999),
			},
			want: 0,
		},
		{
			name: "non numeric choice value scores zero",
			answers: map[uint]interface{}{
				1: "green",
			},
			want: 0,
		},
		{
			name: "short answer matches after trim and case fold",
			answers: map[uint]interface{}{
				3: "  pArIs  ",
			},
			want: 3,
		},
		{
			name: "short answer mismatch",
			answers: map[uint]interface{}{
				3: "Pariss",
			},
			want: 0,
		},
		{
			name:    "missing answers score zero",
			answers: map[uint]interface{}{},
			want:    0,
		},
		{
			name: "unmatched keys are ignored",
			answers: map[uint]interface{}{
				2:   float64(20),
				999: "noise",
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreQuiz(quiz, tt.answers)
			if got != tt.want {
				t.Errorf("ScoreQuiz() = %d, want %d", got, tt.want)
			}
			// grading is pure; a second pass over the same input must agree
			if again := ScoreQuiz(quiz, tt.answers); again != got {
				t.Errorf("ScoreQuiz() not deterministic: %d then %d", got, again)
			}
		})
	}
}

func TestNormalizeAnswers(t *testing.T) {
	t.Run("valid keys and values", func(t *testing.T) {
		normalized, err := NormalizeAnswers(map[string]interface{}{
			"1":  float64(11),
			" 2": "some text",
			"3":  nil,
		})
		if err != nil {
			t.Fatalf("NormalizeAnswers() error = %v", err)
		}
		if len(normalized) != 2 {
			t.Fatalf("NormalizeAnswers() kept %d entries, want 2", len(normalized))
		}
		if normalized[1] != float64(11) {
			t.Errorf("question 1 = %v, want 11", normalized[1])
		}
		if normalized[2] != "some text" {
			t.Errorf("question 2 = %v, want %q", normalized[2], "some text")
		}
	})

	t.Run("bad key fails the whole request", func(t *testing.T) {
		_, err := NormalizeAnswers(map[string]interface{}{
			"1":   float64(11),
			"abc": float64(20),
		})
		if err == nil {
			t.Fatal("NormalizeAnswers() expected error for non-numeric key")
		}
		if !util.IsValidation(err) {
			t.Errorf("NormalizeAnswers() error = %v, want validation error", err)
		}
	})
}

func TestFormatAnswerValue(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{float64(42), "42"},
		{float64(2.5), "2.5"},
		{"free text", "free text"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := FormatAnswerValue(tt.value); got != tt.want {
			t.Errorf("FormatAnswerValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
