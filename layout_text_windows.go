//go:build windows

// layout_text_windows.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

const eol = "\r\n"
