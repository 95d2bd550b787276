package main

import (
	"os"
)

func main() {
	os.Exit(Execute(newRootCommand(), os.Args[1:]))
}
