// Command list-games prints every registered game id, its display name,
// default port, and protocol family.
package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/riftline/gamedig/internal/registry"
)

func main() {
	flag.Parse()

	ids := make([]string, 0, len(registry.GAMES))
	for id := range registry.GAMES {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		entry := registry.GAMES[id]
		fmt.Printf("%-20s %-32s port=%-6d protocol=%s\n", id, entry.DisplayName, entry.DefaultPort, entry.Family.String())
	}
}
