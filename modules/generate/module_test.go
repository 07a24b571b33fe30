package generate_test

import (
	"testing"

	"github.com/specialistvlad/gridtask/internal/testutil/tasktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnRunGenerate(t *testing.T) {
	h := tasktest.New(t, nil)

	require.NoError(t, h.Registry.Invoke(h.Ctx, "generate", ""))

	lines := h.Runner.Lines()
	require.Greater(t, len(lines), 3)
	assert.Equal(t, []string{
		"python -m pip install -r dev-requirements.txt",
		"python utils/generate_api.py",
		"python -m pip install . black isort",
	}, lines[:3])
	assert.Equal(t, "mypy --strict test_opensearchpy/test_types/sync_types.py", lines[len(lines)-1])

	reqs := h.Provisioner.Requests()
	require.Len(t, reqs, 2, "format gets its own environment")
	assert.Equal(t, "generate", reqs[0].Task)
	assert.Equal(t, "format", reqs[1].Task)
	assert.Equal(t, "3.7", reqs[1].Runtime)
	assert.Equal(t, []string{"env-2", "env-1"}, h.Provisioner.Disposed())
}

func TestOnRunGenerate_GeneratorFailureSkipsFormat(t *testing.T) {
	h := tasktest.New(t, nil)
	h.Runner.FailOn("python utils/generate_api.py", 1)

	require.Error(t, h.Registry.Invoke(h.Ctx, "generate", ""))

	assert.Len(t, h.Runner.Lines(), 2)
	assert.Len(t, h.Provisioner.Requests(), 1)
}
