package main

import (
	"os"
	"path/filepath"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/version"

	"methylaseFinder/pkg/launcher"
)

// os
var (
	ex     = simpleUtil.HandleError(os.Executable())
	exPath = filepath.Dir(simpleUtil.HandleError(filepath.EvalSymlinks(ex)))
)

func main() {
	app := &launcher.App{
		InstallDir: exPath,
		Started:    version.LogVersion,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
	os.Exit(app.Run(os.Args[1:]))
}
