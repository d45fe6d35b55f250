package main

import "github.com/solpredict/resolver/cmd"

func main() {
	cmd.Execute()
}
