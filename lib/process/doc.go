// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint helper for
// bureau-expand. It owns the one raw stderr write that happens outside
// the structured logger: reporting the error that ends the process.
package process
