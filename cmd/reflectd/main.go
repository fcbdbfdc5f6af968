// reflectd - rule-driven mock API server.
package main

import "github.com/getmockd/reflectd/pkg/cli"

func main() {
	cli.Execute()
}
