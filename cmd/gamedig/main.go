// Command gamedig queries a single game server and prints its status.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/registry"
	"github.com/riftline/gamedig/internal/settings"
)

func main() {
	var (
		game    = flag.String("game", "", "Registry game id, e.g. csgo (see list-games)")
		address = flag.String("address", "", "Server address as host:port")
		timeout = flag.Duration("timeout", 3*time.Second, "UDP/TCP read timeout")
		retries = flag.Uint("retries", 1, "Additional attempts after the first")
		asJSON  = flag.Bool("json", false, "Print the raw JSON response")
	)
	flag.Parse()

	if *game == "" || *address == "" {
		fmt.Fprintln(os.Stderr, "usage: gamedig -game <id> -address <host:port>")
		os.Exit(2)
	}

	endpoint, err := nio.ParseEndpoint(*address)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid address: %v\n", err)
		os.Exit(1)
	}

	timeouts := settings.TimeoutConfig{Retries: *retries}
	timeouts.UDP.Read = timeout
	timeouts.TCP.Read = timeout

	server, err := registry.Query(*game, endpoint, timeouts)
	if err != nil {
		if diag.Is(err, diag.GameNotFound) {
			fmt.Fprintf(os.Stderr, "unknown game id %q; see list-games\n", *game)
		} else {
			fmt.Fprintf(os.Stderr, "query failed: %v\n", err)
		}
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(server)
		return
	}

	fmt.Printf("name:    %s\n", server.Name)
	if server.Map != nil {
		fmt.Printf("map:     %s\n", *server.Map)
	}
	if server.Mode != nil {
		fmt.Printf("mode:    %s\n", *server.Mode)
	}
	if server.Version != nil {
		fmt.Printf("version: %s\n", *server.Version)
	}
	fmt.Printf("players: %d/%d\n", server.CurrentPlayers, server.MaxPlayers)
	for _, p := range server.Players {
		fmt.Printf("  - %s\n", p.Name)
	}
}
