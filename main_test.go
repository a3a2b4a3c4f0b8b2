package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/raywall/gh-org-progress/config"
	"github.com/raywall/gh-org-progress/progress"
	"github.com/raywall/gh-org-progress/snapshot"
	"github.com/raywall/gh-org-progress/utilization"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	content := "logger:\n  level: error\nstatus_filter:\n  - in progress\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.Bytes()
}

func testSnapshots(t *testing.T, dir string) (string, string) {
	t.Helper()
	project := func(status string) []snapshot.Project {
		return []snapshot.Project{{Number: 1, Name: "Roadmap", Issues: []snapshot.ProjectItem{{Number: 10, Repository: "api", Status: status}}}}
	}
	issue := func(state, body string) []snapshot.Issue {
		return []snapshot.Issue{{
			Number:     10,
			Repository: snapshot.Ref{Name: "api"},
			State:      state,
			Body:       body,
			Assignee:   &snapshot.Login{Login: "alice"},
		}}
	}

	old := &snapshot.Snapshot{
		Projects: project("in progress"),
		Issues:   issue("open", "- [ ] a\n- [ ] b"),
		Members:  []snapshot.Member{{Login: "alice"}},
	}
	current := &snapshot.Snapshot{
		Projects: project("in progress"),
		Issues:   issue("open", "- [x] a\n- [ ] b"),
		Members:  []snapshot.Member{{Login: "alice"}},
	}

	oldPath := filepath.Join(dir, "old.json")
	currentPath := filepath.Join(dir, "current.json")
	require.NoError(t, snapshot.Save(oldPath, old))
	require.NoError(t, snapshot.Save(currentPath, current))
	return oldPath, currentPath
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	oldPath, currentPath := testSnapshots(t, dir)

	out := run(t, "--config", cfgPath, "compare", "--old", oldPath, "--current", currentPath)

	var data progress.AnalysisData
	require.NoError(t, json.Unmarshal(out, &data))
	require.Len(t, data.ProjectChanges, 1)
	assert.Equal(t, 0.0, data.ProjectChanges[0].Change)
	assert.Equal(t, 50.0, data.ProjectChanges[0].Tasks.Change)
	assert.Equal(t, 1, data.ProjectChanges[0].Tasks.New.Completed)
	require.Len(t, data.MemberChanges, 1)
	assert.Equal(t, "alice", data.MemberChanges[0].Login)
}

func TestUtilizationCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	_, currentPath := testSnapshots(t, dir)

	t.Run("config filter", func(t *testing.T) {
		out := run(t, "--config", cfgPath, "utilization", "--snapshot", currentPath)

		var results []utilization.Result
		require.NoError(t, json.Unmarshal(out, &results))
		require.Len(t, results, 1)
		assert.Equal(t, 1, results[0].ActiveIssues)
		assert.Equal(t, utilization.StatusLow, results[0].Status)
	})

	t.Run("flag overrides config", func(t *testing.T) {
		out := run(t, "--config", cfgPath, "utilization", "--snapshot", currentPath, "--status", "done")

		var results []utilization.Result
		require.NoError(t, json.Unmarshal(out, &results))
		require.Len(t, results, 1)
		assert.Equal(t, 0, results[0].ActiveIssues)
	})
}

func TestCompareCommand_MissingFile(t *testing.T) {
	dir := t.TempDir()
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", writeConfig(t, dir), "compare", "--old", filepath.Join(dir, "nope.json"), "--current", filepath.Join(dir, "nope.json")})
	assert.Error(t, root.Execute())
}

func TestSnapshotCommand_RequiresOwner(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GITHUB_OWNER", "")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", writeConfig(t, dir), "snapshot", "--out", filepath.Join(dir, "out.json")})
	assert.ErrorContains(t, root.Execute(), "owner is not configured")
}

func TestInitLogger(t *testing.T) {
	for _, cfg := range []config.LoggerConfig{
		{Level: "debug", Format: "json"},
		{Level: "bogus", Format: "console"},
	} {
		logger, err := initLogger(cfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}

	logger, err := initLogger(config.LoggerConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}
