package console

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Exit formats msg/args and wraps it in a cli.ExitError carrying code, so
// main can propagate it as the process exit status.
func Exit(code int, msg string, args ...interface{}) cli.ExitCoder {
	return cli.Exit(fmt.Sprintf(msg, args...), code)
}
