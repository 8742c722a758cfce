package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/navanithpk/assessment-v5/internal/config"
	"github.com/navanithpk/assessment-v5/internal/exam"
)

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	}()

	version = "1.2.3"
	buildTime = "2024-05-01_10:30:00"
	gitCommit = "abc123"

	var buf bytes.Buffer
	printVersion(&buf)

	output := buf.String()
	for _, expected := range []string{
		"exam-meta",
		"Version: 1.2.3",
		"Build Time: 2024-05-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	} {
		assert.Contains(t, output, expected)
	}
}

func TestRunOneShot_JSON(t *testing.T) {
	cfg := &config.Config{
		Output:    config.OutputJSON,
		Filenames: []string{"9702_s23_qp_41.pdf", "randomfile.pdf"},
	}

	var buf bytes.Buffer
	require.NoError(t, runOneShot(&buf, cfg))

	var got []parsedFile
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "9702_s23_qp_41.pdf", got[0].Filename)
	assert.True(t, got[0].Metadata.Equal(exam.Extract("9702_s23_qp_41.pdf")))
	assert.True(t, got[1].Metadata.IsEmpty())
	assert.Contains(t, buf.String(), `"grade": "A-Level Physics"`)
	assert.Contains(t, buf.String(), `"subject_code": null`)
}

func TestRunOneShot_YAML(t *testing.T) {
	cfg := &config.Config{
		Output:    config.OutputYAML,
		Filenames: []string{"9700_m21_qp_12.pdf"},
	}

	var buf bytes.Buffer
	require.NoError(t, runOneShot(&buf, cfg))

	var got []parsedFile
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)

	grade, ok := got[0].Metadata.GradeValue()
	require.True(t, ok)
	assert.Equal(t, "AS-Level Biology", grade)

	year, ok := got[0].Metadata.YearValue()
	require.True(t, ok)
	assert.Equal(t, 2021, year)
}

func TestSetupLogging(t *testing.T) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()
	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	tests := []struct {
		name       string
		cfg        *config.Config
		wantWriter io.Writer
	}{
		{
			name:       "stdio mode with debug logs to stderr",
			cfg:        &config.Config{Mode: config.ModeStdio, LogLevel: "debug"},
			wantWriter: os.Stderr,
		},
		{
			name:       "stdio mode without debug discards logs",
			cfg:        &config.Config{Mode: config.ModeStdio, LogLevel: "info"},
			wantWriter: io.Discard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogging(tt.cfg)
			assert.Equal(t, tt.wantWriter, log.Writer())
		})
	}

	t.Run("server mode adds file info", func(t *testing.T) {
		setupLogging(&config.Config{Mode: config.ModeServer, LogLevel: "info"})
		assert.Equal(t, log.LstdFlags|log.Lshortfile, log.Flags())
	})
}
