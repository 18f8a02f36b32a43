package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cc := &commandContext{}
	if err := execute(context.Background(), cc, newRootCommand(cc)); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
