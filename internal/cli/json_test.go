package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineMode_DefaultValue(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()

	machineMode = false
	assert.False(t, MachineMode())

	machineMode = true
	assert.True(t, MachineMode())
}

func TestWriteJSONSuccess_BasicData(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONSuccess(&buf, map[string]string{"key": "value"})
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteJSONSuccess_NilData(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONSuccess(&buf, nil))

	assert.NotContains(t, buf.String(), `"data"`)
	assert.Contains(t, buf.String(), `"success": true`)
}

func TestWriteJSONError_AllFields(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONError(&buf, ErrCodeFetchFailed, "Status request failed", "Check the server", map[string]string{"url": "http://x"})
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeFetchFailed, env.Error.Code)
	assert.Equal(t, "Status request failed", env.Error.Message)
	assert.Equal(t, "Check the server", env.Error.Suggestion)
	assert.NotNil(t, env.Error.Details)
}

func TestWriteJSONFromError_GenericError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONFromError(&buf, fmt.Errorf("boom")))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeUnknown, env.Error.Code)
	assert.Equal(t, "boom", env.Error.Message)
}

func TestErrorToJSON_NilReturnsNil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_StructuredErrorWithCause(t *testing.T) {
	err := errors.WrapWithCode(fmt.Errorf("dial tcp: refused"), errors.ErrFetch, "Status request failed", "Is the server running?")

	got := ErrorToJSON(err)

	require.NotNil(t, got)
	assert.Equal(t, ErrCodeFetchFailed, got.Code)
	assert.Equal(t, "Status request failed", got.Message)
	assert.Equal(t, "Is the server running?", got.Suggestion)
	assert.Equal(t, map[string]interface{}{"cause": "dial tcp: refused"}, got.Details)
}

func TestErrorToJSON_AllInternalErrorCodes(t *testing.T) {
	tests := []struct {
		code    string
		message string
		want    string
	}{
		{code: errors.ErrConfig, message: "Config file not found", want: ErrCodeConfigNotFound},
		{code: errors.ErrConfig, message: "refresh.interval must be at least 1s", want: ErrCodeConfigInvalid},
		{code: errors.ErrFetch, message: "Status request failed", want: ErrCodeFetchFailed},
		{code: errors.ErrDecode, message: "Unexpected response body", want: ErrCodeDecodeFailed},
		{code: errors.ErrExec, message: "Mock server failed", want: ErrCodeCommandFailed},
		{code: "OTHER", message: "something", want: ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.want, func(t *testing.T) {
			got := ErrorToJSON(errors.New(tt.code, tt.message, ""))
			assert.Equal(t, tt.want, got.Code)
			assert.Nil(t, got.Details)
		})
	}
}
