// Command binlog replays a binary-layout record stream as text.
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

	"github.com/agilira/cascade"
)

func main() {
	os.Exit(run())
}

func run() int {
	inputPath := flag.String("i", "", "input file (default stdin)")
	outputPath := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	in, closeIn, err := openInput(*inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "binlog:", err)
		return -1
	}
	defer closeIn()

	out, closeOut, err := openOutput(*outputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "binlog:", err)
		return -1
	}
	defer closeOut()

	layout := cascade.NewTextLayout(cascade.DefaultTextPattern)
	bw := bufio.NewWriter(out)
	defer bw.Flush()

	raw, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "binlog: reading input:", err)
		return -1
	}

	for len(raw) > 0 {
		dr, n, err := cascade.DecodeBinary(raw)
		if err != nil {
			fmt.Fprintln(os.Stderr, "binlog: decoding frame:", err)
			return -1
		}
		r := cascade.GetRecord()
		r.Timestamp = dr.Timestamp
		r.Thread = dr.Thread
		r.Level = dr.Level
		r.Logger = dr.Logger
		r.Message = dr.Message
		r.Buffer = dr.Buffer

		layout.Layout(r)
		if _, err := bw.Write(r.Raw); err != nil {
			fmt.Fprintln(os.Stderr, "binlog: writing output:", err)
			cascade.PutRecord(r)
			return -1
		}
		cascade.PutRecord(r)

		raw = raw[n:]
	}

	if err := bw.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "binlog: flushing output:", err)
		return -1
	}
	return 0
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
