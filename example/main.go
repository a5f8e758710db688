//go:build ignore

// This file renders an ER notation file to DOT and Mermaid.
// Run with: go run main.go <file.erd>
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lucasefe/erd"
	"github.com/lucasefe/erd/parser"
)

const sample = `ENTITIES:
Person(__id__, name)
Student() ISA Person
Course(__code__, title: varchar)
RELATIONSHIPS:
Student, Course(+), Enrolls [grade]
AGGREGATION Enrollment IS Student, Course, Attends
Enrollment, Person(1), Supervises IS WEAK
`

func main() {
	src := sample
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to read %s: %v", os.Args[1], err)
		}
		src = parser.NormalizeNewlines(string(data))
	}

	fmt.Println("=== Graphviz ===")
	fmt.Println(erd.ToGraphDescription(src))

	fmt.Println("\n=== Mermaid ===")
	fmt.Println(erd.ToFlowchartDescription(src))

	fmt.Println("\n=== Every syntax error ===")
	broken := "ENTITIES:\nA(x y)\nB(p q)\nRELATIONSHIPS:\n"
	if _, err := erd.Generate(broken, &erd.Config{ErrorPolicy: parser.AllErrors}); err != nil {
		fmt.Print(err)
	}
}
