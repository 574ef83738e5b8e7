package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFlagBoundToViper(t *testing.T) {
	require.NoError(t, rootCmd.PersistentFlags().Set("config", "/tmp/custom-config.yml"))

	assert.Equal(t, "/tmp/custom-config.yml", viper.GetString("config"))
}
