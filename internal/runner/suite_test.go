package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginFeature = `
feature: Login
tags: ["@smoke"]
background:
  - given: user is on login page
scenarios:
  - name: valid login
    tags: [positive]
    steps:
      - when: user logs in with
        args: [john, demo]
      - then: user is on dashboard
  - name: invalid login <user>
    tags: [negative]
    steps:
      - when: user logs in with
        args: ["<user>", "<password>"]
      - then: error is shown
    examples:
      - {user: john, password: wrong}
      - {user: nobody, password: demo}
`

func testRegistry() *Registry {
	noop := func(context.Context, *World, []string) error { return nil }
	reg := NewRegistry()
	reg.Register("user is on login page", 0, noop)
	reg.Register("user logs in with", 2, noop)
	reg.Register("user is on dashboard", 0, noop)
	reg.Register("error is shown", 0, noop)
	return reg
}

func TestBuildSuite(t *testing.T) {
	f, err := ParseFeature("login.yaml", []byte(loginFeature))
	require.NoError(t, err)

	suite, err := BuildSuite([]*Feature{f}, testRegistry())
	require.NoError(t, err)
	require.Len(t, suite.Scenarios, 3)

	valid := suite.Scenarios[0]
	assert.Equal(t, "Login", valid.Feature)
	assert.Equal(t, []string{"smoke", "positive"}, valid.Tags)
	require.Len(t, valid.Steps, 3)
	assert.Equal(t, "Given", valid.Steps[0].Keyword)
	assert.Equal(t, "user is on login page", valid.Steps[0].Text)
	assert.Equal(t, []string{"john", "demo"}, valid.Steps[1].Args)

	outline := suite.Scenarios[2]
	assert.Equal(t, "invalid login nobody #2", outline.Name)
	assert.Equal(t, []string{"nobody", "demo"}, outline.Steps[1].Args)
}

func TestBuildSuite_UnknownStepsReportedTogether(t *testing.T) {
	f, err := ParseFeature("broken.yaml", []byte(`
feature: Broken
scenarios:
  - name: typo
    steps:
      - given: user is on logn page
      - when: user logs in with
        args: [john]
      - then: user is on dashboard
`))
	require.NoError(t, err)

	_, err = BuildSuite([]*Feature{f}, testRegistry())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStep)
	assert.ErrorIs(t, err, ErrStepArgs)

	var unknown *UnknownStepError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "user is on logn page", unknown.Text)
	assert.Equal(t, KindProgrammer, Classify(err))
}

func TestStepSpec_Keyword(t *testing.T) {
	_, err := ParseFeature("bad.yaml", []byte(`
feature: Bad
scenarios:
  - name: two keywords
    steps:
      - given: a
        when: b
`))
	assert.Error(t, err)

	_, err = ParseFeature("noname.yaml", []byte(`scenarios: []`))
	assert.Error(t, err)
}

func TestSuite_Filter(t *testing.T) {
	f, err := ParseFeature("login.yaml", []byte(loginFeature))
	require.NoError(t, err)
	suite, err := BuildSuite([]*Feature{f}, testRegistry())
	require.NoError(t, err)

	assert.Len(t, suite.Filter(nil), 3)
	assert.Len(t, suite.Filter([]string{"@smoke"}), 3)
	assert.Len(t, suite.Filter([]string{"negative"}), 2)
	assert.Len(t, suite.Filter([]string{"smoke", "!negative"}), 1)
	assert.Empty(t, suite.Filter([]string{"regression"}))
}

func TestLoadSuite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.yaml"), []byte(loginFeature), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	suite, err := LoadSuite(dir, testRegistry())
	require.NoError(t, err)
	require.Len(t, suite.Features, 1)
	assert.Equal(t, filepath.Join(dir, "login.yaml"), suite.Features[0].Path)

	_, err = LoadSuite(t.TempDir(), testRegistry())
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg := testRegistry()

	def, ok := reg.Lookup("  User  logs in   WITH ")
	require.True(t, ok)
	assert.Equal(t, 2, def.Args)

	assert.Panics(t, func() {
		reg.Register("user is on dashboard", 0, nil)
	})
	assert.Equal(t, []string{"error is shown", "user is on dashboard", "user is on login page", "user logs in with"}, reg.Steps())
}
