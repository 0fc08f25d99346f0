package main

import "github.com/mccahan/geojson-clipping/internal/cli"

func main() {
	cli.Execute()
}
