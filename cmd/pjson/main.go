// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program pjson matches JSON documents against the grammar, builds their
// value trees, and prints a debug rendering of each result. With no
// arguments it processes a built-in sample document.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/creachadair/pjson"
	"github.com/creachadair/pjson/value"

	"github.com/tailscale/hujson"
)

var (
	relaxed = flag.Bool("relaxed", false,
		"Standardize JWCC input (comments, trailing commas) before matching")
	maxDepth = flag.Int("max-depth", 0, "Nesting depth limit (0 for the default)")
)

const sampleDoc = `{
    "name": "John Doe",
    "age": 30,
    "is_student": false,
    "marks": [90.0, -80.0, 85.1],
    "address": {
        "city": "New York",
        "zip": 10001
    }
}`

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		run("sample", []byte(sampleDoc))
		return
	}
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Read input: %v", err)
		}
		run(path, data)
	}
}

func run(name string, data []byte) {
	if *relaxed {
		std, err := hujson.Standardize(data)
		if err != nil {
			log.Fatalf("Standardize %s: %v", name, err)
		}
		data = std
	}

	g := pjson.NewGrammar()
	g.SetMaxDepth(*maxDepth)
	tree, err := g.Match(pjson.RuleJSON, bytes.NewReader(data))
	if err != nil {
		log.Fatalf("Match %s: %v", name, err)
	}
	v, err := value.Build(tree)
	if err != nil {
		log.Fatalf("Build %s: %v", name, err)
	}

	var sb strings.Builder
	writeDebug(&sb, v, 0)
	fmt.Println(sb.String())
}

// writeDebug renders v as an indented, type-annotated tree.
func writeDebug(sb *strings.Builder, v value.Value, indent int) {
	switch t := v.(type) {
	case value.Object:
		if len(t) == 0 {
			sb.WriteString("Object{}")
			return
		}
		sb.WriteString("Object{")
		for _, key := range slices.Sorted(maps.Keys(t)) {
			sb.WriteString("\n")
			pad(sb, indent+1)
			sb.WriteString(value.String(key).JSON())
			sb.WriteString(": ")
			writeDebug(sb, t[key], indent+1)
			sb.WriteString(",")
		}
		sb.WriteString("\n")
		pad(sb, indent)
		sb.WriteString("}")

	case value.Array:
		if len(t) == 0 {
			sb.WriteString("Array[]")
			return
		}
		sb.WriteString("Array[")
		for _, elt := range t {
			sb.WriteString("\n")
			pad(sb, indent+1)
			writeDebug(sb, elt, indent+1)
			sb.WriteString(",")
		}
		sb.WriteString("\n")
		pad(sb, indent)
		sb.WriteString("]")

	case value.Null:
		sb.WriteString("Null")
	case value.Bool:
		fmt.Fprintf(sb, "Bool(%v)", bool(t))
	case value.Number:
		fmt.Fprintf(sb, "Number(%s)", t.JSON())
	case value.String:
		fmt.Fprintf(sb, "String(%s)", t.JSON())
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}

func pad(sb *strings.Builder, n int) {
	for range n {
		sb.WriteString("    ")
	}
}
