// Command hashlog replays a hash-layout record stream as text, resolving
// logger/message hashes against a .hashlog dictionary.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agilira/cascade"
)

func main() {
	os.Exit(run())
}

func run() int {
	dictPath := flag.String("x", "", "dictionary .hashlog file (default: search upward from the input file)")
	inputPath := flag.String("i", "", "input file (default stdin)")
	outputPath := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	in, closeIn, err := openInput(*inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashlog:", err)
		return -1
	}
	defer closeIn()

	resolvedDict := *dictPath
	if resolvedDict == "" {
		resolvedDict, err = findDict(*inputPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hashlog:", err)
			return -1
		}
	}

	dictFile, err := os.Open(resolvedDict)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashlog: opening dictionary:", err)
		return -1
	}
	dict, err := cascade.ReadHashDict(dictFile)
	dictFile.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashlog: reading dictionary:", err)
		return -1
	}

	out, closeOut, err := openOutput(*outputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashlog:", err)
		return -1
	}
	defer closeOut()

	layout := cascade.NewTextLayout(cascade.DefaultTextPattern)
	bw := bufio.NewWriter(out)
	defer bw.Flush()

	raw, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashlog: reading input:", err)
		return -1
	}

	for len(raw) > 0 {
		dr, n, err := cascade.DecodeHash(raw)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hashlog: decoding frame:", err)
			return -1
		}

		r := cascade.GetRecord()
		r.Timestamp = dr.Timestamp
		r.Thread = dr.Thread
		r.Level = dr.Level
		r.Logger = resolve(dict, dr.LoggerHash)
		r.Message = resolve(dict, dr.MessageHash)
		r.Buffer = dr.Buffer

		layout.Layout(r)
		if _, err := bw.Write(r.Raw); err != nil {
			fmt.Fprintln(os.Stderr, "hashlog: writing output:", err)
			cascade.PutRecord(r)
			return -1
		}
		cascade.PutRecord(r)

		raw = raw[n:]
	}

	if err := bw.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "hashlog: flushing output:", err)
		return -1
	}
	return 0
}

// resolve looks up hash in dict, falling back to a placeholder that
// still carries the hash for anything the dictionary never recorded
// (e.g. a .hashlog captured before the dictionary saw every value).
func resolve(dict *cascade.HashDict, hash uint32) string {
	if s, ok := dict.Lookup(hash); ok {
		return s
	}
	return fmt.Sprintf("<unknown:%08x>", hash)
}

// findDict searches upward from the directory containing inputPath (or
// the working directory, for stdin input) for the first *.hashlog file
// it finds in a directory.
func findDict(inputPath string) (string, error) {
	dir := "."
	if inputPath != "" {
		dir = filepath.Dir(inputPath)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		entries, err := os.ReadDir(dir)
		if err == nil {
			for _, e := range entries {
				if !e.IsDir() && filepath.Ext(e.Name()) == ".hashlog" {
					return filepath.Join(dir, e.Name()), nil
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("no .hashlog dictionary found; pass -x explicitly")
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
