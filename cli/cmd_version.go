package main

import (
	"encoding/json"

	"github.com/ramsteak/FileSweep/internals"
	"github.com/spf13/cobra"
)

const (
	versionString = "1.0.0"
	releaseDate   = "2026-07-30"
)

type versionResult struct {
	Version     string   `json:"version"`
	ReleaseDate string   `json:"release-date"`
	HashAlgos   []string `json:"hash-algorithms"`
	DefaultHash string   `json:"default-hash-algorithm"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and supported hash algorithm metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		data := versionResult{
			Version:     versionString,
			ReleaseDate: releaseDate,
			HashAlgos:   internals.HashAlgos{}.Names(),
			DefaultHash: internals.HashAlgos{}.Default().Algorithm().Name(),
		}

		if argJSONOutput {
			b, err := json.Marshal(&data)
			if err != nil {
				return err
			}
			w.Println(string(b))
			return nil
		}

		w.Printfln("filesweep %s (released %s)", data.Version, data.ReleaseDate)
		w.Println("hash algorithms:")
		for _, name := range data.HashAlgos {
			marker := " "
			if name == data.DefaultHash {
				marker = "*"
			}
			w.Printfln("  %s %s", marker, name)
		}
		return nil
	},
}
