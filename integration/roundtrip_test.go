// Package integration exercises the full pipeline end to end: parse,
// resolve, print, parse again, and export, over a realistic document.
package integration

import (
	"testing"

	"github.com/golangpdl/gopdl"
	"github.com/stretchr/testify/require"
)

// fixture is a small but representative document: version block,
// cross-domain dependencies, enum and object types, commands with
// redirects and returns, events, inline enums, and comments.
const fixture = `# Example protocol used by the integration suite.
# It exercises every declaration form.

version
  major 1
  minor 3

domain Network
  depends on IO

  # Unique request identifier.
  type LoaderId extends string

  # Connection reuse policy.
  type ConnectionType extends string
    enum
      none
      tcp
      udp

  type Headers extends object
    properties
      array of string values

  type Request extends object
    properties
      string url
      optional Headers headers
      optional IO.StreamHandle body
      ConnectionType connection

  command enable

  # Fetches a resource over the network.
  command fetch
    parameters
      string url
      optional boolean ignoreCache
    returns
      LoaderId loaderId
      integer status

  command close
    # Stream teardown lives in the IO domain.
    redirect IO

  event requestWillBeSent
    parameters
      LoaderId loaderId
      Request request
      enum priority
        low
        high

experimental domain IO
  type StreamHandle extends string

  command read
    parameters
      StreamHandle handle
      optional integer size
    returns
      binary data
      boolean eof
`

func TestFixtureParsesAndResolves(t *testing.T) {
	proto, err := gopdl.Parse([]byte(fixture))
	require.NoError(t, err)
	require.Empty(t, proto.Unresolved())

	require.Equal(t, []string{
		"Example protocol used by the integration suite.",
		"It exercises every declaration form.",
	}, proto.Description)
	require.Equal(t, 1, proto.Version.Major)
	require.Equal(t, 3, proto.Version.Minor)

	network := proto.Domain("Network")
	require.NotNil(t, network)
	require.Len(t, network.Types, 4)
	require.Len(t, network.Commands, 3)
	require.Len(t, network.Events, 1)

	io := proto.Domain("IO")
	require.NotNil(t, io)
	require.True(t, io.Experimental)

	// Cross-domain reference binds to the declaring domain.
	body := network.Type("Request").Properties[2]
	require.Equal(t, "body", body.Name)
	require.True(t, body.Optional)
	require.Same(t, io.Type("StreamHandle"), body.Type.Target())

	// Forward reference within the same domain.
	conn := network.Type("Request").Properties[3]
	require.Same(t, network.Type("ConnectionType"), conn.Type.Target())

	require.NotNil(t, network.Command("close").Redirect)
	require.Equal(t, "IO", network.Command("close").Redirect.To)
}

func TestRoundTripThroughPrinter(t *testing.T) {
	first, err := gopdl.Parse([]byte(fixture))
	require.NoError(t, err)

	printed := gopdl.Print(first)
	second, err := gopdl.Parse([]byte(printed))
	require.NoError(t, err)

	require.True(t, first.Equal(second), "print then reparse must preserve structure:\n%s", printed)

	// The printer emits canonical form, so it is a fixed point.
	require.Equal(t, printed, gopdl.Print(second))
}

func TestRoundTripThroughJSON(t *testing.T) {
	first, err := gopdl.Parse([]byte(fixture))
	require.NoError(t, err)

	data, err := first.ToJSONIndent()
	require.NoError(t, err)

	second, err := gopdl.FromJSON(data)
	require.NoError(t, err)
	require.True(t, first.Equal(second))

	// An imported document resolves as cleanly as a parsed one.
	require.Empty(t, second.Resolve())
	require.Same(t,
		second.Domain("IO").Type("StreamHandle"),
		second.Domain("Network").Type("Request").Properties[2].Type.Target())
}

func TestEmbeddedDocumentRemainder(t *testing.T) {
	src := fixture + "\n-- binary trailer, not PDL --\n"

	_, err := gopdl.Parse([]byte(src))
	require.Error(t, err)

	proto, rest, err := gopdl.ParseSome([]byte(src))
	require.NoError(t, err)
	require.Len(t, proto.Domains, 2)
	require.Equal(t, "-- binary trailer, not PDL --\n", string(rest))
}
