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

// unitychain is the operator tool of the unity chain database.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aionnetwork/unitychain/consensus"
	"github.com/aionnetwork/unitychain/consensus/unity"
	"github.com/aionnetwork/unitychain/core"
	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var (
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the databases",
		Value: defaultConfig().DataDir,
	}
	cacheFlag = &cli.IntFlag{
		Name:  "cache",
		Usage: "Megabytes of memory allocated to the database cache",
		Value: defaultConfig().Database.Cache,
	}
	lookbackFlag = &cli.Uint64Flag{
		Name:  "lookback",
		Usage: "Depth searched for a branch point when classifying side chain blocks",
		Value: core.DefaultCacheConfig.SideChainLookback,
	}
	fakePoWFlag = &cli.BoolFlag{
		Name:  "fakepow",
		Usage: "Disables proof-of-work verification",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
)

var app = &cli.App{
	Name:  filepath.Base(os.Args[0]),
	Usage: "the unity chain database tool",
	Flags: []cli.Flag{
		configFileFlag,
		dataDirFlag,
		cacheFlag,
		lookbackFlag,
		fakePoWFlag,
		verbosityFlag,
	},
	Commands: []*cli.Command{
		initCommand,
		importCommand,
		exportCommand,
		checkIndexCommand,
		recoverCommand,
		dumpConfigCommand,
	},
	Before: func(ctx *cli.Context) error {
		level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
		log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, true)))
		return nil
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase opens the chain database inside the configured data directory.
func openDatabase(cfg *unitychainConfig, readonly bool) (ethdb.KeyValueStore, error) {
	dir := filepath.Join(cfg.DataDir, "chaindata")
	return rawdb.NewLevelDBDatabase(dir, cfg.Database.Cache, cfg.Database.Handles, "unitychain/db/chaindata/", readonly)
}

func makeEngine(ctx *cli.Context) consensus.Engine {
	if ctx.Bool(fakePoWFlag.Name) {
		return unity.NewFaker()
	}
	return unity.New()
}

// makeChain opens the database and the chain on top of it. Opening the chain
// runs the startup recovery.
func makeChain(ctx *cli.Context) (*core.BlockChain, ethdb.KeyValueStore, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	db, err := openDatabase(&cfg, false)
	if err != nil {
		return nil, nil, err
	}
	config, _, err := core.SetupGenesisBlock(db, nil)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	chain, err := core.NewBlockChain(db, &cfg.Chain, config, makeEngine(ctx))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return chain, db, nil
}
