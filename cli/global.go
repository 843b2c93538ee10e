package main

const configJSONErrMsg = `could not serialize config JSON: %s`

// global flags shared by every subcommand
var argConfigOutput bool
var argJSONOutput bool
var argConfigFile string
var argVerbose bool

// values passed between cobra's Args/Run closures
var w Output
var log Output
var exitCode int
var cmdError error
