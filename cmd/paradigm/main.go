package main

import "github.com/paradigmmc/paradigm/pkg/cmd/paradigm"

func main() {
	paradigm.Execute()
}
