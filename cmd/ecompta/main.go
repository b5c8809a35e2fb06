package main

import "github.com/SscSPs/ecompta_backend/internal/cli"

func main() {
	cli.Execute()
}
