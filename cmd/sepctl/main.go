package main

import (
	"github.com/andyetzel/starburst-data-products-client/internal/cli"
)

func main() {
	cli.Execute()
}
