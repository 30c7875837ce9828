// tribunal gates multi-agent requests through three fail-closed
// directives: sanctuary (source authorization), synthesis (packet
// validation), and logic (quorum agreement).
package main

import "github.com/vkessler/tribunal/internal/cli"

func main() {
	cli.Execute()
}
