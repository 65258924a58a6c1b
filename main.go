// main is the entry point of the filtering-log service.
package main

import "github.com/AdguardTeam/FilteringLog/internal/cmd"

func main() {
	cmd.Main()
}
