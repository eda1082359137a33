// Package main is the entry point of the taskhub application.
// It sets up and starts the server by calling initialization functions from the internal package.
package main

import (
	"taskhub/internal"
)

func main() {
	internal.Init()
}
