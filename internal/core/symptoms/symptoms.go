// Package symptoms defines the per-day symptom record and the pure rules
// that decide how a period log merges into an existing record.
package symptoms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// InvalidSymptomsError reports a record that breaks the field limits. Fields
// names the offending fields in lower case.
type InvalidSymptomsError struct {
	Fields []string
	Err    error
}

func (e *InvalidSymptomsError) Error() string {
	return fmt.Sprintf("invalid symptoms: %v", e.Err)
}

func (e *InvalidSymptomsError) Unwrap() error { return e.Err }

// UserMessage is the text shown to the person logging.
func (e *InvalidSymptomsError) UserMessage() string {
	if len(e.Fields) == 0 {
		return "Sorry, these symptoms can't be logged."
	}
	return "Sorry, these symptoms can't be logged: check " + strings.Join(e.Fields, ", ") + "."
}

// FlowLevel is the intensity of menstrual flow recorded for a day.
// The empty value means flow was never logged.
type FlowLevel string

const (
	FlowUnset  FlowLevel = ""
	FlowNone   FlowLevel = "NONE"
	FlowLight  FlowLevel = "LIGHT"
	FlowMedium FlowLevel = "MEDIUM"
	FlowHeavy  FlowLevel = "HEAVY"
)

// FlowLevels lists the loggable levels in increasing intensity.
var FlowLevels = []FlowLevel{FlowNone, FlowLight, FlowMedium, FlowHeavy}

// ParseFlowLevel accepts a level name in any case. An empty string parses to FlowUnset.
func ParseFlowLevel(s string) (FlowLevel, error) {
	normalized := FlowLevel(strings.ToUpper(strings.TrimSpace(s)))
	if normalized == FlowUnset {
		return FlowUnset, nil
	}
	for _, level := range FlowLevels {
		if normalized == level {
			return level, nil
		}
	}
	return FlowUnset, fmt.Errorf("unknown flow level %q (want one of none, light, medium, heavy)", s)
}

// IsBleeding reports whether the level marks an actual period day.
func (f FlowLevel) IsBleeding() bool {
	return f == FlowLight || f == FlowMedium || f == FlowHeavy
}

// Symptoms is everything logged for a single day.
//
// Flow is the only field the logging core inspects. The remaining fields are
// carried through storage untouched; Extra holds symptom attributes that have
// no dedicated field yet. Unknown keeps top-level keys written by other
// clients so a rewrite of the year does not drop them.
type Symptoms struct {
	Flow     FlowLevel         `json:"flow,omitempty" yaml:"flow,omitempty" validate:"omitempty,oneof=NONE LIGHT MEDIUM HEAVY"`
	Mood     string            `json:"mood,omitempty" yaml:"mood,omitempty" validate:"max=64"`
	Cramps   string            `json:"cramps,omitempty" yaml:"cramps,omitempty" validate:"max=64"`
	Exercise string            `json:"exercise,omitempty" yaml:"exercise,omitempty" validate:"max=64"`
	Sleep    int               `json:"sleep,omitempty" yaml:"sleep,omitempty" validate:"gte=0,lte=1440"`
	Notes    string            `json:"notes,omitempty" yaml:"notes,omitempty" validate:"max=4096"`
	Extra    map[string]string `json:"extra,omitempty" yaml:"extra,omitempty" validate:"omitempty,dive,keys,required,max=64,endkeys,max=256"`

	Unknown map[string]json.RawMessage `json:"-" yaml:"-"`
}

// symptomFields has the same fields as Symptoms without its JSON methods.
type symptomFields Symptoms

var knownKeys = []string{"flow", "mood", "cramps", "exercise", "sleep", "notes", "extra"}

func isKnownKey(k string) bool {
	for _, known := range knownKeys {
		// encoding/json matches field names case-insensitively.
		if strings.EqualFold(k, known) {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes the known fields and keeps every other key in Unknown.
func (s *Symptoms) UnmarshalJSON(b []byte) error {
	var fields symptomFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*s = Symptoms(fields)
	s.Unknown = nil
	for k, v := range raw {
		if isKnownKey(k) {
			continue
		}
		if s.Unknown == nil {
			s.Unknown = make(map[string]json.RawMessage)
		}
		s.Unknown[k] = v
	}
	return nil
}

// MarshalJSON encodes the known fields followed by the keys kept in Unknown.
func (s Symptoms) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(symptomFields(s))
	if err != nil || len(s.Unknown) == 0 {
		return b, err
	}

	merged := make(map[string]json.RawMessage, len(s.Unknown)+len(knownKeys))
	for k, v := range s.Unknown {
		merged[k] = v
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(b, &known); err != nil {
		return nil, err
	}
	for k, v := range known {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Validate checks the field limits declared in the struct tags.
func (s Symptoms) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fields []string
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		seen := make(map[string]bool)
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			if i := strings.IndexByte(name, '['); i >= 0 {
				name = name[:i]
			}
			if !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
		}
	}
	return &InvalidSymptomsError{Fields: fields, Err: err}
}

// IsEmpty reports whether nothing at all was logged.
func (s Symptoms) IsEmpty() bool {
	return s.Flow == FlowUnset && s.Mood == "" && s.Cramps == "" && s.Exercise == "" &&
		s.Sleep == 0 && s.Notes == "" && len(s.Extra) == 0 && len(s.Unknown) == 0
}

// Clone returns a deep copy so callers can mutate without aliasing storage.
func (s Symptoms) Clone() Symptoms {
	out := s
	if s.Extra != nil {
		out.Extra = make(map[string]string, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	if s.Unknown != nil {
		out.Unknown = make(map[string]json.RawMessage, len(s.Unknown))
		for k, v := range s.Unknown {
			out.Unknown[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// NeedsPeriodFlow reports whether a period log should fill in flow for this record.
// Only unset or NONE flow is ever replaced; logged bleeding is never downgraded.
func (s Symptoms) NeedsPeriodFlow() bool {
	return s.Flow == FlowUnset || s.Flow == FlowNone
}

// ApplyPeriodFlow sets flow to MEDIUM when NeedsPeriodFlow holds and reports
// whether the record changed.
func (s *Symptoms) ApplyPeriodFlow() bool {
	if !s.NeedsPeriodFlow() {
		return false
	}
	s.Flow = FlowMedium
	return true
}
