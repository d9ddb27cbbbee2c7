package symptoms

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlowLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    FlowLevel
		wantErr bool
	}{
		{in: "", want: FlowUnset},
		{in: "none", want: FlowNone},
		{in: " Light ", want: FlowLight},
		{in: "MEDIUM", want: FlowMedium},
		{in: "heavy", want: FlowHeavy},
		{in: "spotting", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFlowLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyPeriodFlow(t *testing.T) {
	tests := []struct {
		name        string
		flow        FlowLevel
		wantFlow    FlowLevel
		wantChanged bool
	}{
		{name: "unset becomes medium", flow: FlowUnset, wantFlow: FlowMedium, wantChanged: true},
		{name: "none becomes medium", flow: FlowNone, wantFlow: FlowMedium, wantChanged: true},
		{name: "light is kept", flow: FlowLight, wantFlow: FlowLight},
		{name: "medium is kept", flow: FlowMedium, wantFlow: FlowMedium},
		{name: "heavy is not downgraded", flow: FlowHeavy, wantFlow: FlowHeavy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Symptoms{Flow: tt.flow, Mood: "calm"}
			changed := s.ApplyPeriodFlow()
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantFlow, s.Flow)
			assert.Equal(t, "calm", s.Mood, "other fields must survive")
		})
	}
}

func TestClone_DoesNotAliasExtra(t *testing.T) {
	orig := Symptoms{Extra: map[string]string{"acne": "mild"}}
	cp := orig.Clone()
	cp.Extra["acne"] = "severe"

	assert.Equal(t, "mild", orig.Extra["acne"])
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Symptoms{}.IsEmpty())
	assert.False(t, Symptoms{Flow: FlowNone}.IsEmpty())
	assert.False(t, Symptoms{Extra: map[string]string{"k": "v"}}.IsEmpty())
}

func TestSymptomsJSON_KeepsUnknownKeys(t *testing.T) {
	raw := `{"flow":"LIGHT","bloating":"yes","sleep":7,"spots":{"left":2}}`

	var s Symptoms
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, FlowLight, s.Flow)
	assert.Equal(t, 7, s.Sleep)
	require.Len(t, s.Unknown, 2)
	assert.JSONEq(t, `"yes"`, string(s.Unknown["bloating"]))

	s.ApplyPeriodFlow()
	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"flow":"LIGHT","bloating":"yes","sleep":7,"spots":{"left":2}}`, string(out))
}

func TestSymptomsJSON_KnownKeysOnly(t *testing.T) {
	var s Symptoms
	require.NoError(t, json.Unmarshal([]byte(`{"Flow":"HEAVY","mood":"ok"}`), &s))

	assert.Nil(t, s.Unknown, "differently cased known keys are not unknown")
	assert.Equal(t, Symptoms{Flow: FlowHeavy, Mood: "ok"}, s)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"flow":"HEAVY","mood":"ok"}`, string(out))
}

func TestClone_DoesNotAliasUnknown(t *testing.T) {
	orig := Symptoms{Unknown: map[string]json.RawMessage{"bloating": json.RawMessage(`"yes"`)}}
	cp := orig.Clone()
	cp.Unknown["bloating"] = json.RawMessage(`"no"`)

	assert.Equal(t, `"yes"`, string(orig.Unknown["bloating"]))
	assert.False(t, orig.IsEmpty())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Symptoms{Flow: FlowLight, Sleep: 480, Extra: map[string]string{"acne": "mild"}}.Validate())

	err := Symptoms{Flow: FlowLight, Sleep: 1500}.Validate()
	var invalid *InvalidSymptomsError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, []string{"sleep"}, invalid.Fields)
	assert.Equal(t, "Sorry, these symptoms can't be logged: check sleep.", invalid.UserMessage())

	err = Symptoms{Flow: "SPOTTING", Extra: map[string]string{"k": strings.Repeat("x", 300)}}.Validate()
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{"flow", "extra"}, invalid.Fields)
}
