// Package main implements the bridgectl CLI tool.
// It provides commands for driving a debugger bridge over HTTP and WebSocket.
package main

import "github.com/bridgectl/bridgectl/cmd/bridgectl/cmd"

func main() {
	cmd.Execute()
}
