// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	EngineNotAvailableId Id = iota + 1
	CommandFailedId
	InvocationFailedId
	InvalidRunRequestId
	ListingMalformedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is a catalog entry explaining one class of failure.
	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with glamour. stylePath is a glamour style name
// ("dark", "light", "notty") or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	engineNotAvailableIssue = &Issue{
		id: EngineNotAvailableId,
		mdMsg: `
# No container engine available!

ctrun drives containers through the ` + "`docker`" + ` or ` + "`podman`" + ` command line,
and neither answered a ` + "`version`" + ` query.

## Things you can try:
- Install Docker or Podman and make sure the binary is on your PATH
- Start the daemon (Docker) or the user service (Podman):
~~~
$ sudo systemctl start docker
$ systemctl --user start podman.socket
~~~

- Point ctrun at a specific binary:
~~~
$ ctrun --engine podman ls
$ CTRUN_BINARY_PATH=/opt/bin/docker ctrun ls
~~~`,
		extLinks: []HttpLink{"https://docs.docker.com/engine/install/", "https://podman.io/docs/installation"},
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# The container engine reported an error!

A listing or prune command exited with a non-zero status. The engine's own
error output is shown above.

## Common causes:
- The daemon is not running or the socket is not reachable
- Your user is not allowed to talk to the daemon
- Another prune is already in progress

## Things you can try:
- Re-run the printed command by hand to see the full output
- Run with ` + "`--verbose`" + ` to log every engine invocation`,
	}

	invocationFailedIssue = &Issue{
		id: InvocationFailedId,
		mdMsg: `
# The command could not be run!

The process never produced an exit status: it could not be started, or it
was stopped because the configured timeout expired or ctrun was interrupted.

## Things you can try:
- Check that the engine binary and ` + "`/usr/bin/env bash`" + ` exist
- Raise or disable the timeout:
~~~cue
timeout: "10m" // "0s" disables it
~~~`,
	}

	invalidRunRequestIssue = &Issue{
		id: InvalidRunRequestId,
		mdMsg: `
# Invalid run request!

A container command is given either as arguments after ` + "`--`" + `, or as a
single script with ` + "`--shell`" + `. The two cannot be combined.

## Examples:
~~~
$ ctrun run -- echo "hello, world"
$ ctrun run --shell 'echo hello; ls /'
~~~

Scripts given with ` + "`--shell`" + ` are interpreted by the host's bash. Only pass
text you trust.`,
	}

	listingMalformedIssue = &Issue{
		id: ListingMalformedId,
		mdMsg: `
# Unexpected container listing!

A row of the engine's listing did not have one value per requested column,
so the whole listing was rejected instead of guessing.

## Things you can try:
- Check ` + "`list_columns`" + ` in your config: every name must be a field the
  engine's ` + "`--format`" + ` template understands (ID, Image, Command, ...)
- Run the listing by hand and compare:
~~~
$ docker container ls -a --no-trunc --format '{{.ID}}\t{{.Names}}'
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or did not match the schema.

## Things you can try:
- Print the effective configuration:
~~~
$ ctrun config show
~~~

- Check the CUE syntax of your config file:
~~~cue
container_engine: "podman"
image:            "debian:stable-slim"
timeout:          "5m"
~~~

- Point at another file with ` + "`--config <path>`" + ``,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The engine refused the request.

## Things you can try:
- Add your user to the docker group and log in again:
~~~
$ sudo usermod -aG docker $USER
~~~

- Use rootless Podman instead:
~~~
$ ctrun --engine podman run -- echo hi
~~~`,
	}

	issues = map[Id]*Issue{
		engineNotAvailableIssue.Id(): engineNotAvailableIssue,
		commandFailedIssue.Id():      commandFailedIssue,
		invocationFailedIssue.Id():   invocationFailedIssue,
		invalidRunRequestIssue.Id():  invalidRunRequestIssue,
		listingMalformedIssue.Id():   listingMalformedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
