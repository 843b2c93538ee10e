package main

import (
	"encoding/json"

	"github.com/ramsteak/FileSweep/internals"
	"github.com/spf13/cobra"
)

var argCheckSupport string

// hashAlgosResult is a struct used to serialize JSON output
type hashAlgosResult struct {
	Supported    []string `json:"supported"`
	CheckName    string   `json:"check,omitempty"`
	CheckSupport bool     `json:"check-supported,omitempty"`
}

var hashAlgosCmd = &cobra.Command{
	Use:   "hash-algos",
	Short: "List supported fingerprint hash algorithms",
	RunE: func(cmd *cobra.Command, args []string) error {
		result := hashAlgosResult{Supported: internals.HashAlgos{}.Names()}
		if argCheckSupport != "" {
			result.CheckName = argCheckSupport
			_, err := internals.HashAlgos{}.FromString(argCheckSupport)
			result.CheckSupport = err == nil
		}

		if argJSONOutput {
			b, err := json.Marshal(result)
			if err != nil {
				return err
			}
			w.Println(string(b))
			return nil
		}

		for _, name := range result.Supported {
			w.Println(name)
		}
		if result.CheckName != "" {
			if result.CheckSupport {
				w.Printfln("%s: supported", result.CheckName)
			} else {
				w.Printfln("%s: not supported", result.CheckName)
			}
		}
		return nil
	},
}

func init() {
	hashAlgosCmd.Flags().StringVar(&argCheckSupport, "check", "", "check whether a specific algorithm name is supported")
}
