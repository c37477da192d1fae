/*

A simple CLI app to parse and display information about a replay file
passed as a CLI argument, auto-detecting whether it's a v2 or v3 replay.

*/
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/icza/gdreplay/meta"
	"github.com/icza/gdreplay/v2"
	"github.com/icza/gdreplay/v3"
)

const (
	appName    = "gdreplay"
	appVersion = "v1.0.0"
	appAuthor  = "icza"
	appHome    = "https://github.com/icza/gdreplay"
)

const (
	ExitCodeMissingArguments    = 1
	ExitCodeFailedToReadFile    = 2
	ExitCodeFailedToParseReplay = 3
	ExitCodeFailedToCreateFile  = 4
)

var (
	version = flag.Bool("version", false, "print version info and exit")
	format  = flag.String("format", "auto", "replay wire format: 'auto', 'v2' or 'v3'")
	debug   = flag.Bool("debug", false, "retain raw replay bytes in the decoded output")
	outFile = flag.String("outfile", "", "optional output file name")
	indent  = flag.Bool("indent", true, "use indentation when formatting output")
)

var v2Magic = []byte{'S', 'I', 'L', 'L'}
var v3Magic = []byte{'S', 'L', 'C', '3', 'R', 'P', 'L', 'Y'}

func main() {
	flag.Parse()

	if *version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(ExitCodeMissingArguments)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("Failed to read replay: %v\n", err)
		os.Exit(ExitCodeFailedToReadFile)
	}

	detected := *format
	if detected == "auto" {
		detected = detectFormat(data)
	}

	printer := message.NewPrinter(language.English)

	var result interface{}
	switch detected {
	case "v2":
		rep, err := v2.Read(bytes.NewReader(data), meta.Empty{}, v2.Config{Debug: *debug})
		if err != nil {
			fmt.Printf("Failed to parse v2 replay: %v\n", err)
			os.Exit(ExitCodeFailedToParseReplay)
		}
		printer.Printf("Parsed v2 replay: %d actions\n", len(rep.Actions))
		result = rep
	case "v3":
		rep, err := v3.Read(bytes.NewReader(data), v3.Config{Debug: *debug})
		if err != nil {
			fmt.Printf("Failed to parse v3 replay: %v\n", err)
			os.Exit(ExitCodeFailedToParseReplay)
		}
		printer.Printf("Parsed v3 replay: %d atoms\n", len(rep.Atoms))
		result = rep
	default:
		fmt.Printf("Could not detect replay format (pass -format v2 or -format v3)\n")
		os.Exit(ExitCodeFailedToParseReplay)
	}

	destination := os.Stdout
	if *outFile != "" {
		foutput, err := os.Create(*outFile)
		if err != nil {
			fmt.Printf("Failed to create output file: %v\n", err)
			os.Exit(ExitCodeFailedToCreateFile)
		}
		defer func() {
			if err := foutput.Close(); err != nil {
				panic(err)
			}
		}()
		destination = foutput
	}

	enc := json.NewEncoder(destination)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
	}
}

// detectFormat sniffs data's magic bytes, returning "v2", "v3" or "" if
// neither is recognized.
func detectFormat(data []byte) string {
	if bytes.HasPrefix(data, v2Magic) {
		return "v2"
	}
	if bytes.HasPrefix(data, v3Magic) {
		return "v3"
	}
	return ""
}

func printVersion() {
	fmt.Println(appName, "version:", appVersion)
	fmt.Println("Platform:", runtime.GOOS, runtime.GOARCH)
	fmt.Println("Built with:", runtime.Version())
	fmt.Println("Author:", appAuthor)
	fmt.Println("Home page:", appHome)
}

func printUsage() {
	fmt.Println("Usage:")
	name := os.Args[0]
	fmt.Printf("\t%s [FLAGS] repfile\n", name)
	fmt.Println("\tRun with '-h' to see a list of available flags.")
}
