// Command txtool decodes, inspects and checks transactions from files or stdin.
package main

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	parser := newParser(os.Stdin, os.Stdout)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			// already printed by the parser
			if flagsErr.Type == flags.ErrHelp {
				return
			}
			os.Exit(2)
		}
		logger.Named("txtool").Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}
