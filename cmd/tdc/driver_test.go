package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code = run(args, bytes.NewBufferString(stdin), &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestHeaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("asdfghjklöä"), 0o644))

	compressed := filepath.Join(dir, "out.tdc")
	code, _, stderr := runCLI(t, "", "--algorithm", "lz78(ascii())", "--output", compressed, input)
	require.Equal(t, exitSuccess, code, stderr)

	data, err := os.ReadFile(compressed)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("lz78(coder=ascii())%")))

	decompressed := filepath.Join(dir, "out.dec")
	code, _, stderr = runCLI(t, "", "--decompress", "--output", decompressed, compressed)
	require.Equal(t, exitSuccess, code, stderr)

	out, err := os.ReadFile(decompressed)
	require.NoError(t, err)
	assert.Equal(t, "asdfghjklöä", string(out))
}

func TestHeaderRoundTripRaw(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("asdfghjklöä"), 0o644))

	compressed := filepath.Join(dir, "out.raw.tdc")
	code, _, stderr := runCLI(t, "", "--algorithm", "lz78(ascii())", "--raw", "--output", compressed, input)
	require.Equal(t, exitSuccess, code, stderr)

	data, err := os.ReadFile(compressed)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(data, []byte("lz78(coder=ascii())%")))

	decompressed := filepath.Join(dir, "out.raw.dec")
	code, _, stderr = runCLI(t, "", "--decompress", "--raw", "--algorithm", "lz78(ascii())", "--output", decompressed, compressed)
	require.Equal(t, exitSuccess, code, stderr)

	out, err := os.ReadFile(decompressed)
	require.NoError(t, err)
	assert.Equal(t, "asdfghjklöä", string(out))
}

func TestEmptyInputRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(input, []byte(""), 0o644))

	compressed := filepath.Join(dir, "empty.tdc")
	code, _, stderr := runCLI(t, "", "--algorithm", "lz78(ascii())", "--output", compressed, input)
	require.Equal(t, exitSuccess, code, stderr)

	decompressed := filepath.Join(dir, "empty.dec")
	code, _, stderr = runCLI(t, "", "--decompress", "--output", decompressed, compressed)
	require.Equal(t, exitSuccess, code, stderr)

	out, err := os.ReadFile(decompressed)
	require.NoError(t, err)
	assert.Equal(t, "", string(out))
}

func TestDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("a"), 0o644))

	code, _, stderr := runCLI(t, "", "--algorithm", "lz78(ascii())", input)
	require.Equal(t, exitSuccess, code, stderr)
	_, err := os.Stat(input + ".tdc")
	assert.NoError(t, err)
}

func TestRefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("a"), 0o644))
	existing := filepath.Join(dir, "out.tdc")
	require.NoError(t, os.WriteFile(existing, []byte("junk"), 0o644))

	code, _, _ := runCLI(t, "", "--algorithm", "lz78(ascii())", "--output", existing, input)
	assert.Equal(t, exitRuntime, code)

	code, _, stderr := runCLI(t, "", "--algorithm", "lz78(ascii())", "--output", existing, "--force", input)
	assert.Equal(t, exitSuccess, code, stderr)
}

func TestMissingAlgorithmIsUsageError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("a"), 0o644))

	code, _, _ := runCLI(t, "", "--output", filepath.Join(dir, "out.tdc"), input)
	assert.Equal(t, exitUsage, code)
}

func TestUnknownInputFileIsRuntimeError(t *testing.T) {
	code, _, _ := runCLI(t, "", "--algorithm", "lz78(ascii())", "--usestdout", "/no/such/file")
	assert.Equal(t, exitRuntime, code)
}

func TestListPrintsRegisteredAlgorithms(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "--list")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, stdout, "lz78")
	assert.Contains(t, stdout, "lzw")
	assert.Contains(t, stdout, "lzss")
}

func TestStdinStdoutRoundTrip(t *testing.T) {
	var compressedOut bytes.Buffer
	code := run([]string{"--algorithm", "lz78(ascii())", "--stdin", "--usestdout"},
		bytes.NewBufferString("mississippi"), &compressedOut, &bytes.Buffer{})
	require.Equal(t, exitSuccess, code)

	var decompressedOut bytes.Buffer
	code = run([]string{"--decompress", "--stdin", "--usestdout"},
		bytes.NewBuffer(compressedOut.Bytes()), &decompressedOut, &bytes.Buffer{})
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "mississippi", decompressedOut.String())
}

func TestLZSSRoundTripAutoEscapesSentinel(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	// No trailing NUL here: the driver must apply the sentinel escaping
	// lzss's InputRestrictions declare before compressing, and strip it
	// back off after decompressing.
	require.NoError(t, os.WriteFile(input, []byte("abracadabra"), 0o644))

	compressed := filepath.Join(dir, "out.tdc")
	code, _, stderr := runCLI(t, "", "--algorithm", "lzss(ascii())", "--output", compressed, input)
	require.Equal(t, exitSuccess, code, stderr)

	decompressed := filepath.Join(dir, "out.dec")
	code, _, stderr = runCLI(t, "", "--decompress", "--output", decompressed, compressed)
	require.Equal(t, exitSuccess, code, stderr)

	out, err := os.ReadFile(decompressed)
	require.NoError(t, err)
	assert.Equal(t, "abracadabra", string(out))
}

func TestStatsReportIsValidJSONWithRate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("mississippi"), 0o644))

	code, stdout, stderr := runCLI(t, "", "--algorithm", "lz78(ascii())", "--usestdout", "--stats", "--stats-title", "bench", input)
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, stdout, `"title":"bench"`)
	assert.Contains(t, stdout, `"rate"`)
}
