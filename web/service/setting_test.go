package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingDefaultsAndOverrides(t *testing.T) {
	setup(t)
	defer teardown()

	service := SettingService{}

	port, err := service.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	require.NoError(t, service.SetPort(9090))
	port, err = service.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 9090, port)

	maxAge, err := service.GetSessionMaxAge()
	require.NoError(t, err)
	assert.Equal(t, 60, maxAge)
}

func TestSettingBasePathNormalization(t *testing.T) {
	setup(t)
	defer teardown()

	service := SettingService{}

	basePath, err := service.GetBasePath()
	require.NoError(t, err)
	assert.Equal(t, "/", basePath)

	require.NoError(t, service.SetBasePath("panel"))
	basePath, err = service.GetBasePath()
	require.NoError(t, err)
	assert.Equal(t, "/panel/", basePath)
}

func TestSettingSecretIsStable(t *testing.T) {
	setup(t)
	defer teardown()

	service := SettingService{}

	first, err := service.GetSecret()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := service.GetSecret()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
