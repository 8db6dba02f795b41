package main

import "github.com/bigs-im/pg-gateway/cmd"

func main() {
	cmd.Execute()
}
