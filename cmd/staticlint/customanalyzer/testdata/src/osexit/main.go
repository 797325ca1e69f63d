package main

import (
	"fmt"
	"os"
)

func main() {
	defer fmt.Println("storage closed")
	if len(os.Args) > 3 {
		os.Exit(2) // want "direct call to os.Exit in main function of main package"
	}
	func() {
		os.Exit(1) // want "direct call to os.Exit in main function of main package"
	}()
}

func exit() {
	os.Exit(1)
}
