package main

import "github.com/dbsmedya/masterkey/cmd/masterkey/cmd"

func main() {
	cmd.Execute()
}
