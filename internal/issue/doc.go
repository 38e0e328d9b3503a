// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Each error can point at an Issue: a Markdown page in the
// package catalog that the CLI renders with glamour when --verbose is set.
package issue
