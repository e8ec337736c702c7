package main

import (
	"github.com/karpathyan/asd2vtk/cmd"
)

func main() {
	cmd.Execute()
}
