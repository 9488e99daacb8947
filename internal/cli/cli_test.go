package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facemap/backend/internal/models"
)

const cleanPayload = `{"injectionPoints": [
	{"id": "p", "muscle": "procerus", "x": 0.5, "y": 0.35, "dosage": 4},
	{"id": "f", "muscle": "frontalis", "x": 0.5, "y": 0.15, "dosage": 2}
]}`

const dangerPayload = `[{"id": "p1", "muscle": "corrugator_tail", "x": 30, "y": 34, "dosage": 4}]`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_Clean(t *testing.T) {
	out, err := run(t, cleanPayload, "validate")

	require.NoError(t, err)
	assert.Equal(t, "Nenhum problema anatômico detectado\n", out)
}

func TestValidate_BlockingFindings(t *testing.T) {
	out, err := run(t, dangerPayload, "validate", "-")

	assert.ErrorIs(t, err, ErrBlockingFindings)
	assert.Contains(t, out, "1 erro(s) crítico(s)")
	assert.Contains(t, out, "ERROR   [danger_zone]")
	assert.Contains(t, out, "[p1]")
}

func TestValidate_JSONOutputFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(dangerPayload), 0o600))

	out, err := run(t, "", "validate", "--output", "json", path)
	assert.ErrorIs(t, err, ErrBlockingFindings)

	var response models.ValidationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.False(t, response.Data.IsValid)
	assert.Len(t, response.Data.Errors, 1)
	assert.Equal(t, "1 erro(s) crítico(s)", response.Summary)
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := run(t, "", "validate", filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read payload")
}

func TestValidate_InvalidPayload(t *testing.T) {
	_, err := run(t, "not json", "validate")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBlockingFindings)
}

func TestUnsupportedOutputFormat(t *testing.T) {
	_, err := run(t, cleanPayload, "validate", "-o", "yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestMap_Table(t *testing.T) {
	out, err := run(t, cleanPayload, "map")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "glabella")
	assert.Contains(t, lines[2], "frontalis")
}

func TestMap_JSON(t *testing.T) {
	out, err := run(t, cleanPayload, "map", "-o", "json")
	require.NoError(t, err)

	var response models.MappedPointsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	require.Len(t, response.Data, 2)
	assert.Equal(t, "p", response.Data[0].ID)
	assert.InDelta(t, 0.69, response.Data[0].Position[1], 1e-9)
}

func TestZones(t *testing.T) {
	out, err := run(t, "", "zones")
	require.NoError(t, err)
	assert.Contains(t, out, "periorbital")
	assert.Contains(t, out, "5-25")

	out, err = run(t, "", "zones", "--output", "json")
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"frontalis", "glabella", "periorbital", "nasal", "perioral", "mentalis", "masseter", "unknown"}, names)
}

func TestZones_RejectsArguments(t *testing.T) {
	_, err := run(t, "", "zones", "extra")
	assert.Error(t, err)
}
