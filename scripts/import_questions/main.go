// Converts a question spreadsheet into the questions.json file the bot loads
// at startup. Expected columns: question, option A..D, answer letter.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

type question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: import_questions <questions.xlsx> [questions.json]")
	}
	out := "questions.json"
	if len(os.Args) > 2 {
		out = os.Args[2]
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	var questions []question
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}
		for i, row := range rows {
			if i == 0 || len(row) < 6 { // Skip header or invalid rows
				continue
			}

			// row[0]: question text
			// row[1..4]: options A-D
			// row[5]: answer letter

			answer := strings.ToUpper(strings.TrimSpace(row[5]))
			if answer < "A" || answer > "D" {
				fmt.Printf("Invalid answer letter %q in sheet %s row %d\n", row[5], sheetName, i+1)
				continue
			}
			text := strings.TrimSpace(row[0])
			if text == "" {
				continue
			}
			options := make([]string, 0, 4)
			for _, opt := range row[1:5] {
				if strings.TrimSpace(opt) != "" {
					options = append(options, strings.TrimSpace(opt))
				}
			}
			if len(options) < 2 {
				fmt.Printf("Not enough options in sheet %s row %d\n", sheetName, i+1)
				continue
			}
			questions = append(questions, question{Question: text, Options: options, Answer: answer})
		}
	}

	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %d questions to %s\n", len(questions), out)
}
