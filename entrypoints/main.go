package main

import "github.com/Laisky/laisky-blog-content/cmd"

func main() {
	cmd.Execute()
}
