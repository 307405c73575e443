package recordio

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	content := "5f4dcc3b5aa765d61d8327deb882cf99\n\n  zznothex  \n\nAABBCCDDEEFF00112233445566778899\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines, err := ParseInputFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"5f4dcc3b5aa765d61d8327deb882cf99",
		"zznothex",
		"AABBCCDDEEFF00112233445566778899",
	}, lines)
}

func TestParseInputFile_MissingFile(t *testing.T) {
	_, err := ParseInputFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestNormalizeAndValidateHash(t *testing.T) {
	assert.Equal(t, "aabbcc", NormalizeHash("  AABBCC  "))

	valid := NormalizeHash("5F4DCC3B5AA765D61D8327DEB882CF99")
	assert.True(t, IsValidHash(valid))
	assert.False(t, IsValidHash("zznothex"))
	assert.False(t, IsValidHash("5f4dcc3b5aa765d61d8327deb882cf9")) // 31 chars
}

func TestWriteOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.json")

	password := "password"
	records := map[string]Record{
		"5f4dcc3b5aa765d61d8327deb882cf99": {
			CrackedPassword: &password,
			Status:          "FOUND",
			JobID:           "11111111-1111-1111-1111-111111111111",
		},
	}

	require.NoError(t, WriteOutputFile(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]Record
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, records, got)
}

func TestPrintConsole(t *testing.T) {
	var buf bytes.Buffer
	password := "password"
	PrintConsole(&buf, "5f4dcc3b5aa765d61d8327deb882cf99", Record{
		CrackedPassword: &password,
		Status:          "FOUND",
		JobID:           "job-1",
	})
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99 password job-1\n", buf.String())

	buf.Reset()
	PrintConsole(&buf, "zznothex", Record{Status: "INVALID_INPUT", JobID: ""})
	assert.Equal(t, "zznothex INVALID_INPUT \n", buf.String())
}
