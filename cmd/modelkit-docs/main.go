package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelkit/pkg/docs"
	"github.com/goliatone/go-modelkit/pkg/spec"
)

func main() {
	input := flag.String("input", "", "documentation records file (.json or .yaml), stdin if empty")
	format := flag.String("format", "rst", "output format: rst, markdown or html")
	title := flag.String("title", "Model documentation", "document title")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	records, err := loadRecords(*input)
	if err != nil {
		log.Fatalf("%s %v", color.RedString("error:"), err)
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, color.YellowString("warning:"), "no documentation records found")
	}

	gen := docs.NewGenerator()
	rendered, err := gen.Render(docs.Format(*format), *title, records)
	if err != nil {
		log.Fatalf("%s %v", color.RedString("error:"), err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Fatalf("%s write output: %v", color.RedString("error:"), err)
		}
		fmt.Printf("Documentation written to %s\n", *output)
		return
	}
	fmt.Println(rendered)
}

func loadRecords(path string) ([]spec.DocRecord, error) {
	var raw []byte
	var err error
	if path == "" {
		raw, err = readAllStdin()
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var records []spec.DocRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &records)
	default:
		err = yaml.Unmarshal(raw, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func readAllStdin() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return nil, fmt.Errorf("no input file given and stdin is a terminal")
	}
	return io.ReadAll(os.Stdin)
}
