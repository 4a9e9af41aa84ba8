// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestConfigRoundTrip(t *testing.T) {
	cfg := defaultConfig()
	cfg.DataDir = "/var/lib/unitychain"
	cfg.Database.Handles = 1024
	cfg.Chain.SideChainLookback = 64
	cfg.Chain.ClockDriftBuffer = 30 * time.Second

	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, &cfg))

	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, buf.Bytes(), 0644))

	loaded := defaultConfig()
	require.NoError(t, loadConfig(file, &loaded))
	require.Equal(t, cfg, loaded)
}

func TestConfigUnknownField(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("[Database]\nCompression = true\n"), 0644))

	cfg := defaultConfig()
	err := loadConfig(file, &cfg)
	require.ErrorContains(t, err, "Compression")
	require.ErrorContains(t, err, file)
}

func TestConfigFlagsOverrideFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("DataDir = \"from-file\"\n\n[Chain]\nSideChainLookback = 8\n"), 0644))

	var cfg unitychainConfig
	testApp := &cli.App{
		Flags: []cli.Flag{configFileFlag, dataDirFlag, cacheFlag, lookbackFlag},
		Action: func(ctx *cli.Context) (err error) {
			cfg, err = makeConfig(ctx)
			return err
		},
	}
	require.NoError(t, testApp.Run([]string{"unitychain", "--config", file, "--lookback", "16"}))
	require.Equal(t, "from-file", cfg.DataDir)
	require.Equal(t, uint64(16), cfg.Chain.SideChainLookback)
	require.Equal(t, defaultConfig().Database, cfg.Database)
}
