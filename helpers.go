package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

// PrintTable prints aligned columns. Widths are measured in terminal cells so
// Japanese labels line up.
func PrintTable(headers []string, rows [][]string, footers []string) {
	FprintTable(os.Stdout, headers, rows, footers)
}

func FprintTable(w io.Writer, headers []string, rows [][]string, footers []string) {
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = runewidth.StringWidth(header)
	}
	for _, row := range append(rows, footers) {
		for i, cell := range row {
			if i < len(colWidths) && runewidth.StringWidth(cell) > colWidths[i] {
				colWidths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	printRow := func(cells []string) {
		for i := range colWidths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Fprintf(w, "%s\t", runewidth.FillRight(cell, colWidths[i]))
		}
		fmt.Fprintln(w)
	}

	// print header
	printRow(headers)

	// print rows
	for _, row := range rows {
		printRow(row)
	}

	// print footer, skipped columns stay blank
	if len(footers) > 0 {
		printRow(footers)
	}
}

// Confirm asks a yes/no question on r, anything but y or yes is a no.
func Confirm(r io.Reader, question string) bool {
	reader := bufio.NewReader(r)
	fmt.Printf("%s [y/N]: ", question)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}
