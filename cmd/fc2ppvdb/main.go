package main

import (
	"fc2ppvdb-scraper/cmd/fc2ppvdb/cmd"
)

func main() {
	cmd.Execute()
}
