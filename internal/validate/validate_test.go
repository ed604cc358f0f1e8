package validate

import (
	"strings"
	"testing"
)

type analyzeForm struct {
	VideoURL string `form:"video_url" validate:"required,max=2048,url,youtube"`
}

type questionForm struct {
	Question string `form:"question" validate:"required,max=2000"`
}

type seekBody struct {
	Timestamp string `json:"timestamp" validate:"required,max=32"`
}

func TestStruct_AnalyzeForm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid watch URL", "https://www.youtube.com/watch?v=cA9XbI0ge0g", ""},
		{"valid short URL", "https://youtu.be/cA9XbI0ge0g", ""},
		{"empty", "", "video url is required"},
		{"not a URL", "hello world", "video url must be a valid URL"},
		{"other host", "https://vimeo.com/12345", "Please enter a valid YouTube URL"},
		{"over limit", "https://youtu.be/" + strings.Repeat("a", MaxVideoURLLength), "video url must be 2048 characters or fewer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(analyzeForm{VideoURL: tt.input})
			got := ""
			if err != nil {
				got = err.Error()
			}
			if got != tt.want {
				t.Errorf("Struct(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStruct_QuestionForm(t *testing.T) {
	if err := Struct(questionForm{Question: "What is this about?"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Struct(questionForm{}); err == nil || err.Error() != "question is required" {
		t.Errorf("expected required error, got %v", err)
	}
	long := strings.Repeat("q", MaxQuestionLength+1)
	if err := Struct(questionForm{Question: long}); err == nil || err.Error() != "question must be 2000 characters or fewer" {
		t.Errorf("expected max length error, got %v", err)
	}
	atLimit := strings.Repeat("q", MaxQuestionLength)
	if err := Struct(questionForm{Question: atLimit}); err != nil {
		t.Errorf("unexpected error at limit: %v", err)
	}
}

func TestStruct_UsesJSONNames(t *testing.T) {
	err := Struct(seekBody{})
	if err == nil || err.Error() != "timestamp is required" {
		t.Errorf("expected timestamp required error, got %v", err)
	}
}

func TestStruct_NonStruct(t *testing.T) {
	if err := Struct("not a struct"); err == nil {
		t.Error("expected error for non-struct input")
	}
}
