package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pankaj-dahiya-devops/namegov/internal/naming"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var missing *naming.MissingInputError
		var tooMany *naming.TooManyArgumentsError
		if errors.As(err, &missing) || errors.As(err, &tooMany) {
			fmt.Fprintf(os.Stderr, "Usage: namegov suggest-name %s\n", naming.SuggestUsage)
		}
		os.Exit(1)
	}
}
