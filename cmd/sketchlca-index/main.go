// cmd/sketchlca-index/main.go
package main

import (
	"bytes"
	"fmt"
	"os"

	"sketchlca/internal/indexapp"
)

func main() {
	var out, errBuf bytes.Buffer
	code := indexapp.Run(os.Args[1:], &out, &errBuf)

	if out.Len() > 0 {
		fmt.Print(out.String())
	}
	if errBuf.Len() > 0 {
		fmt.Fprint(os.Stderr, errBuf.String())
	}
	os.Exit(code)
}
