// file: internals/features/extraction/extractor/service/fields.go
package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
)

// Fields is the flat shape the frontend prefills forms with. Anything
// the model could not read stays an empty string.
type Fields struct {
	StudentDepartment string `json:"student_department"`
	CompetitionName   string `json:"competition_name"`
	StudentID         string `json:"student_id"`
	StudentName       string `json:"student_name"`
	AwardCategory     string `json:"award_category"`
	AwardLevel        string `json:"award_level"`
	CompetitionType   string `json:"competition_type"`
	Organizer         string `json:"organizer"`
	AwardDate         string `json:"award_date"`
	Advisor           string `json:"advisor"`
}

func EmptyFields() Fields {
	return Fields{}
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ParseFields pulls the field map out of a model reply. The reply may
// wrap the JSON in a fenced code block, surround it with prose, or use
// lists for multi-value fields; anything unparseable yields empty
// fields rather than an error.
func ParseFields(content string) Fields {
	raw := content
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		raw = m[1]
	}

	var parsed map[string]interface{}
	if err := sonic.Unmarshal([]byte(raw), &parsed); err != nil {
		// Last resort: grab the outermost braces from a noisy reply.
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start < 0 || end <= start {
			return EmptyFields()
		}
		if err := sonic.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
			return EmptyFields()
		}
	}

	get := func(key string) string { return coerceString(parsed[key]) }
	return Fields{
		StudentDepartment: get("student_department"),
		CompetitionName:   get("competition_name"),
		StudentID:         get("student_id"),
		StudentName:       get("student_name"),
		AwardCategory:     get("award_category"),
		AwardLevel:        get("award_level"),
		CompetitionType:   get("competition_type"),
		Organizer:         get("organizer"),
		AwardDate:         get("award_date"),
		Advisor:           get("advisor"),
	}
}

// coerceString flattens whatever value shape the model produced into a
// single display string. Lists join with ", ".
func coerceString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := coerceString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
