package main

import (
	"boscoin.io/tokenvote/cmd/tokenvote/cmd"
)

func main() {
	cmd.Execute()
}
