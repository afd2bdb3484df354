package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/signup/internal/registration"
)

func TestFromValidation_DropsPassingFields(t *testing.T) {
	state := registration.FormState{Username: "ab", FavLanguage: "rust", FavFood: "pizza", Agreement: true}
	errs := registration.ErrorMap{
		registration.FieldUsername:    registration.MsgUsernameMin,
		registration.FieldFavLanguage: "",
	}

	dto := FromValidation(state, errs, false)

	require.False(t, dto.Valid)
	require.Equal(t, map[string]string{"username": registration.MsgUsernameMin}, dto.Errors)
	require.Equal(t, state, dto.State)
}

func TestFormatValidation_JSON(t *testing.T) {
	var buf bytes.Buffer
	dto := FromValidation(registration.FormState{Username: "alice"}, registration.ErrorMap{
		registration.FieldAgreement: registration.MsgAgreementOptions,
	}, false)

	require.NoError(t, NewFormatter(&buf).FormatValidation(dto))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, false, got["valid"])
	require.Equal(t, "alice", got["state"].(map[string]any)["username"])
	require.Equal(t, registration.MsgAgreementOptions, got["errors"].(map[string]any)["agreement"])
	require.Contains(t, buf.String(), "\n  \"valid\"", "indented output")
}

func TestFromResult(t *testing.T) {
	ok := FromResult(registration.Succeeded(registration.MsgSubmitSuccess), "http://x/registration", false)
	require.Equal(t, SubmissionDTO{Outcome: "success", Message: registration.MsgSubmitSuccess, Endpoint: "http://x/registration"}, ok)

	fail := FromResult(registration.Failed(registration.MsgSubmitFailure), "http://x/registration", true)
	require.Equal(t, "failure", fail.Outcome)
	require.Equal(t, registration.MsgSubmitFailure, fail.Message)
	require.True(t, fail.Forced)
}

func TestFormatSubmission_OmitsForcedWhenFalse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatSubmission(SubmissionDTO{Outcome: "success"}))
	require.NotContains(t, buf.String(), "forced")
}
