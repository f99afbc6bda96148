package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

// NotAvailable is the string rendered for any absent field.
const NotAvailable = "N/A"

// Field is an optional string value. The zero value is NotFound.
type Field struct {
	value string
	ok    bool
}

// NotFound is the absent Field.
var NotFound = Field{}

// Found wraps a recovered value.
func Found(v string) Field {
	return Field{value: v, ok: true}
}

// Get returns the value and whether it was found.
func (f Field) Get() (string, bool) {
	return f.value, f.ok
}

// IsFound reports whether the field holds a value.
func (f Field) IsFound() bool {
	return f.ok
}

// Or returns the value, or def when the field is absent.
func (f Field) Or(def string) string {
	if !f.ok {
		return def
	}
	return f.value
}

// String renders the field, using NotAvailable when absent.
func (f Field) String() string {
	return f.Or(NotAvailable)
}

// MarshalJSON encodes an absent field as null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.ok {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// UnmarshalJSON decodes null as NotFound.
func (f *Field) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = NotFound
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = Found(s)
	return nil
}

// Difficulty is the difficulty token attached to a question.
type Difficulty string

const (
	Easy     Difficulty = "Easy"
	Moderate Difficulty = "Moderate"
	Hard     Difficulty = "Hard"
	Unknown  Difficulty = "Unknown"
)

// ParseDifficulty maps a token to a Difficulty, case-insensitively.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy
	case "moderate":
		return Moderate
	case "hard":
		return Hard
	default:
		return Unknown
	}
}

// RawInterview is one scraped write-up before extraction.
type RawInterview struct {
	Company     string  `json:"company"`
	Role        string  `json:"role"`
	Title       string  `json:"title,omitempty"`
	URL         string  `json:"url,omitempty"`
	Years       float64 `json:"years,omitempty"`
	Description string  `json:"description"`
}

// QuestionRecord is one question asked in a round.
type QuestionRecord struct {
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Approach   string     `json:"approach"`
	Link       string     `json:"link,omitempty"`
}

// SystemDesignQuestion is the optional design prompt of a round.
type SystemDesignQuestion struct {
	Question string `json:"question"`
	Approach string `json:"approach,omitempty"`
}

// RoundRecord is one numbered interview round.
type RoundRecord struct {
	Number        int                   `json:"round_number"`
	Mode          Field                 `json:"mode"`
	Duration      Field                 `json:"duration"`
	InterviewDate Field                 `json:"interview_date"`
	Questions     []QuestionRecord      `json:"questions"`
	SystemDesign  *SystemDesignQuestion `json:"system_design_question,omitempty"`
	Links         []string              `json:"links"`
}

// InterviewRecord is the structured form of one write-up.
type InterviewRecord struct {
	Company             Field         `json:"company"`
	Role                Field         `json:"role"`
	ApplicationMethod   Field         `json:"application_method"`
	Eligibility         Field         `json:"eligibility"`
	PreparationDuration Field         `json:"preparation_duration"`
	Topics              []string      `json:"topics"`
	Tips                []string      `json:"tips"`
	ResumeTips          []string      `json:"resume_tips"`
	Rounds              []RoundRecord `json:"interview_rounds"`
}
