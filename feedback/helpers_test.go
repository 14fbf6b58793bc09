package feedback_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	fbskema "github.com/reoring/fbskema"
)

func issuesOf(t *testing.T, err error) fbskema.Issues {
	t.Helper()
	require.Error(t, err)
	iss, ok := fbskema.AsIssues(err)
	require.True(t, ok, "want fbskema.Issues, got %T: %v", err, err)
	return iss
}

func requireIssue(t *testing.T, err error, path, code string) fbskema.Issue {
	t.Helper()
	iss := issuesOf(t, err)
	it, ok := iss.Find(path, code)
	require.True(t, ok, "want %s at %s, got %v", code, path, iss)
	return it
}
