// Command postsctl is the terminal client for the Postboard API.
package main

import "postboard/internal/cli"

func main() {
	cli.Execute()
}
