package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
)

// errOut is where error messages go. Tests swap it.
var errOut io.Writer = os.Stderr

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
// With --verbose the technical error follows the friendly message.
func PrintError(userMsg string, technicalErr error) {
	fmt.Fprintln(errOut, userMsg)
	if viper.GetBool("verbose") && technicalErr != nil && technicalErr.Error() != userMsg {
		fmt.Fprintf(errOut, "Error: %v\n", technicalErr)
	}
}

// LogError logs an error to stderr only in verbose mode.
func LogError(msg string, err error) {
	if !viper.GetBool("verbose") {
		return
	}
	if err != nil {
		fmt.Fprintf(errOut, "[DEBUG] %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(errOut, "[DEBUG] %s\n", msg)
	}
}
