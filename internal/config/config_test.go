// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points ELCACHE_CFG at a testdata file and resets the
// global Config so the next access reloads it.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("ELCACHE_CFG", absPath)
	Config = Type{}

	t.Cleanup(func() {
		Config = Type{}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "cache section",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				cache, ok := cfg.Data["cache"].(map[string]interface{})
				assert.True(t, ok, "cache should be a map")
				assert.Equal(t, "/var/tmp/elcache", cache["path"])
				assert.Equal(t, "jobs", cache["context"])
				assert.Equal(t, 1800, cache["ttl"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "test-cache", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["enabled"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				tags, ok := cfg.Data["tags"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, tags, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			assert.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("ELCACHE_CFG", "/nonexistent/path/elcache.yaml")
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgEnvIsDirectory(t *testing.T) {
	t.Setenv("ELCACHE_CFG", "testdata")
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "nested string", key: "cache.path", want: "/var/tmp/elcache"},
		{name: "missing key with default", key: "missing", defaultValue: []string{"fallback"}, want: "fallback"},
		{name: "missing key without default", key: "missing", wantErr: true},
		{name: "non-string value", key: "cache.ttl", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, "simple.yaml")
			_, _ = Load()

			got, err := GetString(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "nested int", key: "cache.ttl", want: 1800},
		{name: "missing key with default", key: "missing", defaultValue: []int{3600}, want: 3600},
		{name: "missing key without default", key: "missing", wantErr: true},
		{name: "non-int value", key: "cache.path", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, "simple.yaml")
			_, _ = Load()

			got, err := GetInt(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetWithNamespace(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	_, err := Load("ls")
	require.NoError(t, err)

	// Namespaced key wins over the global one.
	val, err := GetString("output")
	assert.NoError(t, err)
	assert.Equal(t, "json", val)

	got, err := GetBool("titles")
	assert.NoError(t, err)
	assert.True(t, got)

	// Without a namespace the global key resolves.
	Config.Namespace = ""
	val, err = GetString("output")
	assert.NoError(t, err)
	assert.Equal(t, "text", val)
}
