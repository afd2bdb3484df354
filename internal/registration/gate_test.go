package registration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	gate, err := NewGate(DefaultSchema())
	require.NoError(t, err)
	return gate
}

func TestJSONSchema_Shape(t *testing.T) {
	doc := DefaultSchema().JSONSchema()

	require.Equal(t, "object", doc["type"])
	require.ElementsMatch(t, []string{"username", "favLanguage", "favFood", "agreement"}, doc["required"])

	props := doc["properties"].(map[string]any)
	username := props["username"].(map[string]any)
	require.Equal(t, 3, username["minLength"])
	require.Equal(t, 20, username["maxLength"])

	food := props["favFood"].(map[string]any)
	require.Equal(t, []any{"pizza", "spaghetti", "broccoli"}, food["enum"])

	agreement := props["agreement"].(map[string]any)
	require.Equal(t, []any{true}, agreement["enum"])
}

func TestGate_Scenarios(t *testing.T) {
	gate := newTestGate(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		state FormState
		want  bool
	}{
		{"defaults", DefaultState(), false},
		{"short username", FormState{Username: "ab", FavLanguage: "rust", FavFood: "pizza", Agreement: true}, false},
		{"all valid", FormState{Username: "alice", FavLanguage: "javascript", FavFood: "broccoli", Agreement: true}, true},
		{"long username", FormState{Username: strings.Repeat("a", 21), FavLanguage: "rust", FavFood: "pizza", Agreement: true}, false},
		{"not agreed", FormState{Username: "alice", FavLanguage: "rust", FavFood: "pizza"}, false},
		{"bad language", FormState{Username: "alice", FavLanguage: "go", FavFood: "pizza", Agreement: true}, false},
		{"no food", FormState{Username: "alice", FavLanguage: "rust", Agreement: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := gate.Valid(ctx, tt.state)
			require.NoError(t, err)
			require.Equal(t, tt.want, valid)
		})
	}
}

func TestGate_CancelledContext(t *testing.T) {
	gate := newTestGate(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	valid, err := gate.Valid(ctx, FormState{Username: "alice", FavLanguage: "rust", FavFood: "pizza", Agreement: true})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, valid)
}

func TestGate_Explain(t *testing.T) {
	gate := newTestGate(t)

	require.Empty(t, gate.Explain(FormState{Username: "alice", FavLanguage: "rust", FavFood: "pizza", Agreement: true}))
	require.Contains(t, gate.Explain(FormState{Username: "ab", FavLanguage: "rust", FavFood: "pizza", Agreement: true}), "username")
}

// The gate and the per-field rules are separate engines; they must agree on
// every state.
func TestGate_AgreesWithFieldRules(t *testing.T) {
	gate := newTestGate(t)
	schema := DefaultSchema()

	rapid.Check(t, func(rt *rapid.T) {
		state := FormState{
			Username:    rapid.StringN(0, 25, -1).Draw(rt, "username"),
			FavLanguage: rapid.SampledFrom([]string{"", "javascript", "rust", "go"}).Draw(rt, "favLanguage"),
			FavFood:     rapid.SampledFrom([]string{"", "pizza", "spaghetti", "broccoli", "kale"}).Draw(rt, "favFood"),
			Agreement:   rapid.Bool().Draw(rt, "agreement"),
		}

		valid, err := gate.Valid(context.Background(), state)
		require.NoError(rt, err)
		require.Equal(rt, !schema.ValidateValues(stateValues(state)).Any(), valid)
	})
}

func stateValues(state FormState) map[string]any {
	values := make(map[string]any, len(Fields))
	for _, f := range Fields {
		values[string(f)] = state.Value(f)
	}
	return values
}
