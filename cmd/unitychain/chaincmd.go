// Copyright 2015 The go-ethereum Authors
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
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aionnetwork/unitychain/core"
	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/aionnetwork/unitychain/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var (
	initCommand = &cli.Command{
		Action:    initGenesis,
		Name:      "init",
		Usage:     "Bootstrap and initialize a new genesis block",
		ArgsUsage: "<genesisPath>",
		Description: `
The init command initializes a new genesis block and definition for the network.
This is a destructive action and changes the network in which you will be
participating.

It expects the genesis file as argument.`,
	}
	importCommand = &cli.Command{
		Action:    importChain,
		Name:      "import",
		Usage:     "Import a blockchain file",
		ArgsUsage: "<filename> (<filename 2> ... <filename N>) ",
		Description: `
The import command imports blocks from an RLP-encoded form. The form can be one file
with several RLP-encoded blocks, or several files can be used.

All files are decoded before the first block is imported. Blocks are imported
in file order; an invalid block aborts the import.`,
	}
	exportCommand = &cli.Command{
		Action:    exportChain,
		Name:      "export",
		Usage:     "Export blockchain into file",
		ArgsUsage: "<filename> [<blockNumFirst> <blockNumLast>]",
		Description: `
Requires a first argument of the file to write to.
Optional second and third arguments control the first and
last block to write. In this mode, the file will be appended
if already existing. If the file ends with .gz, the output will
be gzipped.`,
	}
	checkIndexCommand = &cli.Command{
		Action: checkIndex,
		Name:   "check-index",
		Usage:  "Verify the level index against the block store",
		Description: `
The check-index command recomputes the total difficulty of every indexed block
and rewrites the records that disagree. It reports missing levels without
repairing them; opening the chain (e.g. with the recover command) rebuilds them.`,
	}
	recoverCommand = &cli.Command{
		Action: recoverChain,
		Name:   "recover",
		Usage:  "Run the startup recovery and print the starting block",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "reconcile",
				Usage: "Re-execute the blocks above the starting block to restore their world state",
			},
		},
		Description: `
The recover command checks the level index, rewinds the head to the highest
main chain block with a readable world state and prints it. With --reconcile
the blocks above it are executed again.`,
	}
)

// initGenesis will initialise the given JSON format genesis file and writes it as
// the zero'd block (i.e. genesis) or will fail hard if it can't succeed.
func initGenesis(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.New("need the genesis.json file as the only argument")
	}
	file, err := os.Open(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read genesis file: %w", err)
	}
	defer file.Close()

	genesis := new(core.Genesis)
	if err := json.NewDecoder(file).Decode(genesis); err != nil {
		return fmt.Errorf("invalid genesis file: %w", err)
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	db, err := openDatabase(&cfg, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	_, hash, err := core.SetupGenesisBlock(db, genesis)
	if err != nil {
		return fmt.Errorf("failed to write genesis block: %w", err)
	}
	log.Info("Successfully wrote genesis state", "datadir", cfg.DataDir, "hash", hash)
	return nil
}

func importChain(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return errors.New("this command requires an argument")
	}
	chain, db, err := makeChain(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	defer chain.Stop()

	start := time.Now()
	stats, err := importFiles(chain, ctx.Args().Slice())
	fmt.Printf("Import done in %v: %v\n", time.Since(start), stats)
	return err
}

// importStats counts the import results of one run.
type importStats map[core.ImportResult]int

func (s importStats) String() string {
	results := []core.ImportResult{core.ImportedBest, core.ImportedNotBest, core.ImportExist, core.ImportNoParent, core.ImportInvalidBlock}
	parts := make([]string, 0, len(results))
	for _, res := range results {
		if s[res] > 0 {
			parts = append(parts, fmt.Sprintf("%v=%d", res, s[res]))
		}
	}
	return strings.Join(parts, " ")
}

// importFiles decodes all files concurrently and imports their blocks in
// argument order.
func importFiles(chain *core.BlockChain, files []string) (importStats, error) {
	var (
		decoded = make([][]*types.Block, len(files))
		g       errgroup.Group
	)
	for i, file := range files {
		g.Go(func() error {
			blocks, err := decodeBlocks(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			decoded[i] = blocks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats := make(importStats)
	for i, blocks := range decoded {
		log.Info("Importing blockchain", "file", files[i], "blocks", len(blocks))
		for _, block := range blocks {
			res, err := chain.TryToConnect(block)
			if err != nil {
				return stats, fmt.Errorf("block %d [%x]: %w", block.NumberU64(), block.Hash(), err)
			}
			stats[res]++
			switch res {
			case core.ImportInvalidBlock:
				return stats, fmt.Errorf("invalid block %d [%x]", block.NumberU64(), block.Hash())
			case core.ImportNoParent:
				log.Warn("Skipping block with unknown parent", "number", block.NumberU64(), "hash", block.Hash(), "parent", block.ParentHash())
			}
		}
	}
	return stats, nil
}

// decodeBlocks reads an RLP stream of blocks, skipping genesis blocks.
func decodeBlocks(fn string) ([]*types.Block, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var reader io.Reader = fh
	if strings.HasSuffix(fn, ".gz") {
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, err
		}
	}
	var (
		stream = rlp.NewStream(reader, 0)
		blocks []*types.Block
	)
	for n := 0; ; n++ {
		b := new(types.Block)
		if err := stream.Decode(b); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("at block %d: %w", n, err)
		}
		if b.NumberU64() == 0 {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func exportChain(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return errors.New("this command requires an argument")
	}
	chain, db, err := makeChain(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	defer chain.Stop()

	var (
		fn         = ctx.Args().First()
		first      = uint64(0)
		last       = chain.CurrentBlock().NumberU64()
		appendMode = false
	)
	if ctx.Args().Len() >= 3 {
		f, ferr := strconv.ParseUint(ctx.Args().Get(1), 10, 64)
		l, lerr := strconv.ParseUint(ctx.Args().Get(2), 10, 64)
		if ferr != nil || lerr != nil {
			return errors.New("export error in parsing parameters: block number not an integer")
		}
		first, last, appendMode = f, l, true
	}
	start := time.Now()
	writer, err := openExport(fn, appendMode)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := exportRange(chain, writer, first, last); err != nil {
		return fmt.Errorf("export error: %w", err)
	}
	fmt.Printf("Export done in %v\n", time.Since(start))
	return nil
}

// gzipFile closes both the compressor and the file beneath it.
type gzipFile struct {
	*gzip.Writer
	fh *os.File
}

func (f *gzipFile) Close() error {
	if err := f.Writer.Close(); err != nil {
		f.fh.Close()
		return err
	}
	return f.fh.Close()
}

// openExport opens an export file, gzipping the output when the name ends
// in .gz.
func openExport(fn string, appendMode bool) (io.WriteCloser, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	fh, err := os.OpenFile(fn, flags, os.ModePerm)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(fn, ".gz") {
		return &gzipFile{Writer: gzip.NewWriter(fh), fh: fh}, nil
	}
	return fh, nil
}

// exportRange writes the main chain blocks first..last to w.
func exportRange(chain *core.BlockChain, w io.Writer, first, last uint64) error {
	if first > last {
		return fmt.Errorf("export failed: first (%d) is greater than last (%d)", first, last)
	}
	log.Info("Exporting batch of blocks", "count", last-first+1)

	reported := time.Now()
	for nr := first; nr <= last; nr++ {
		block := chain.GetBlockByNumber(nr)
		if block == nil {
			return fmt.Errorf("export failed on #%d: not found", nr)
		}
		if err := rlp.Encode(w, block); err != nil {
			return err
		}
		if time.Since(reported) >= 8*time.Second {
			log.Info("Exporting blocks", "exported", nr-first, "elapsed", time.Since(reported))
			reported = time.Now()
		}
	}
	return nil
}

func checkIndex(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	db, err := openDatabase(&cfg, false)
	if err != nil {
		return err
	}
	defer db.Close()

	height, ok := rawdb.ReadBlockStoreHeight(db)
	if !ok {
		return core.ErrNoGenesis
	}
	res, err := core.NewLevelIndex(db, cfg.Chain.LevelCacheLimit).IntegrityCheck(height)
	if err != nil {
		return err
	}
	fmt.Printf("Level index: %v (heights 0..%d)\n", res, height)
	if res == core.IntegrityMissingGenesis {
		return core.ErrMissingGenesis
	}
	return nil
}

func recoverChain(ctx *cli.Context) error {
	chain, db, err := makeChain(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	defer chain.Stop()

	start := chain.StartingBlock()
	fmt.Printf("Starting block: #%d [%x]\n", start.NumberU64(), start.Hash())

	if ctx.Bool("reconcile") {
		if err := chain.ReconcileState(); err != nil {
			return err
		}
	}
	head := chain.CurrentHead()
	fmt.Printf("Head block:     #%d [%x] td %v\n", head.Number(), head.Hash(), head.TotalDifficulty)
	return nil
}
