package main

import "github.com/ryo246912/gh-rest-bindings/internal/cli"

func main() {
	cli.Execute()
}
