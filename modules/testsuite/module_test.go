package testsuite_test

import (
	"testing"

	"github.com/specialistvlad/gridtask/internal/env"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/runner"
	"github.com/specialistvlad/gridtask/internal/testutil/tasktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionLines = []string{
	"python -m pip install .",
	"python -c import opensearchpy\nprint(opensearchpy.OpenSearch())",
	"python -m pip install .[async]",
	"python -c import opensearchpy\nprint(opensearchpy.AsyncOpenSearch())",
	"python -m pip install -r dev-requirements.txt",
	"python setup.py test",
}

func TestOnRunTest_SingleRuntime(t *testing.T) {
	h := tasktest.New(t, nil)

	require.NoError(t, h.Registry.Invoke(h.Ctx, "test", "3.9"))

	assert.Equal(t, sessionLines, h.Runner.Lines())
	assert.Contains(t, h.Banner.String(), "Session test-3.9 was successful in")
}

func TestOnRunTest_SmokeFailureStopsSession(t *testing.T) {
	h := tasktest.New(t, nil)
	h.Runner.FailOn("python -c import opensearchpy\nprint(opensearchpy.AsyncOpenSearch())", 1)

	err := h.Registry.Invoke(h.Ctx, "test", "3.11")

	var failure *runner.CommandFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, sessionLines[:4], h.Runner.Lines())
}

func TestOnRunTest_MatrixWithUnavailableRuntime(t *testing.T) {
	// --- Arrange ---
	h := tasktest.New(t, nil)
	h.Provisioner.FailRuntime("3.8")

	// --- Act ---
	err := h.Registry.Invoke(h.Ctx, "test", "")

	// --- Assert ---
	var matrix *registry.MatrixError
	require.ErrorAs(t, err, &matrix)
	require.Len(t, matrix.Results, 6)
	for _, r := range matrix.Results {
		if r.Runtime == "3.8" {
			var perr *env.ProvisionError
			assert.ErrorAs(t, r.Err, &perr)
			continue
		}
		assert.NoError(t, r.Err, "runtime %s", r.Runtime)
	}

	assert.Len(t, h.Provisioner.Requests(), 6)
	assert.Len(t, h.Runner.Lines(), 5*len(sessionLines))
	assert.Contains(t, h.Banner.String(), "Session test-3.8 failed in")
	assert.Contains(t, h.Banner.String(), "Session test-3.9 was successful in")
}
