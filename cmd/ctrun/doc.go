// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for ctrun.
//
// The root command is built by NewRootCommand around an App, the composition
// root that loads configuration and resolves the container engine. Commands
// stay thin: they translate flags into facade calls from internal/container
// and turn facade errors into actionable messages from internal/issue.
package cmd
