package main

import "github.com/loanlens/loanlens/internal/cli"

func main() {
	cli.Execute()
}
