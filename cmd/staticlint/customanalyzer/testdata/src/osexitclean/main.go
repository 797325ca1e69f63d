package main

import (
	"fmt"
	exit "os"
)

type runner struct{}

func (runner) Exit(code int) {}

func main() {
	var r runner
	r.Exit(1)
	fmt.Println(len(exit.Args))
}
