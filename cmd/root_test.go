package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbine-cosim/turbine-cosim/cosim"
)

func TestBuildBackend_Fake(t *testing.T) {
	backend, err := buildBackend(cosim.ModeFake)
	require.NoError(t, err)
	assert.IsType(t, &cosim.Turbine{}, backend)
}

func TestBuildBackend_CLIWithoutPathsFails(t *testing.T) {
	// qblade flags default to empty, so cli mode must name the missing
	// configuration rather than fall through to a partial run
	_, err := buildBackend(cosim.ModeCLI)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executable")
}

func TestBuildBackend_CLIIsUnsupported(t *testing.T) {
	qbladeExe = "/opt/qblade/qblade"
	qbladeProject = "/data/t.qprj"
	qbladeSim = "TimeDomain"
	qbladeOutput = "/data/out.csv"
	defer func() { qbladeExe, qbladeProject, qbladeSim, qbladeOutput = "", "", "", "" }()

	_, err := buildBackend(cosim.ModeCLI)
	assert.ErrorIs(t, err, cosim.ErrUnsupportedMode)
}

func TestBuildBackend_SILIsUnsupported(t *testing.T) {
	_, err := buildBackend(cosim.ModeSIL)
	assert.ErrorIs(t, err, cosim.ErrUnsupportedMode)
}

func TestTurbineParams_WindSpeedFlagApplies(t *testing.T) {
	old := windSpeed
	windSpeed = 11.0
	defer func() { windSpeed = old }()

	params, err := turbineParams()
	require.NoError(t, err)
	assert.Equal(t, 11.0, params.WindSpeed)
	assert.Equal(t, 1.0, params.Inertia)
}

func TestTurbineParams_CalibrationFileWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turbines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(calibrationYAML), 0o644))

	oldPath, oldProfile := turbineConfigPath, turbineProfile
	turbineConfigPath, turbineProfile = path, "offshore-6mw"
	defer func() { turbineConfigPath, turbineProfile = oldPath, oldProfile }()

	params, err := turbineParams()
	require.NoError(t, err)
	assert.Equal(t, 11.5, params.WindSpeed)
	assert.Equal(t, 4.2, params.Inertia)
}
