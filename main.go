package main

import (
	"github.com/oste/expo-cli/cmd"
	errUtils "github.com/oste/expo-cli/errors"
)

func main() {
	// Use errUtils.OsExit to allow test interception.
	errUtils.OsExit(cmd.Execute())
}
