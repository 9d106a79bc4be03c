package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cluetrainer/internal/abbrev"
)

func main() {
	dataPath := flag.String("data", "./data/abbreviations.json", "Path to the abbreviation dataset")
	historyPath := flag.String("history", "./abbrevquiz_history.json", "Path to the score history file")
	flag.Parse()

	dataset, err := abbrev.LoadDataset(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load abbreviations: %v", err)
	}

	session, err := abbrev.NewSession(dataset.Entries, abbrev.NewFileStore(*historyPath))
	if err != nil {
		log.Fatalf("Failed to start quiz: %v", err)
	}

	fmt.Println("Crossword abbreviation quiz. Enter comma-separated guesses, or 'q' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		question, err := session.Next()
		if err != nil {
			log.Fatalf("Failed to get question: %v", err)
		}

		fmt.Printf("%q has %d abbreviation(s). Your guesses: ", question.Meaning, question.Slots)
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "q" {
			break
		}

		result, err := session.Submit(strings.Split(line, ","))
		if err != nil {
			log.Fatalf("Failed to submit answer: %v", err)
		}

		if result.Correct {
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Not quite. Valid answers: %s\n", strings.Join(result.ValidSet, ", "))
			if len(result.WrongGuesses) > 0 {
				fmt.Printf("Wrong guesses: %s\n", strings.Join(result.WrongGuesses, ", "))
			}
		}
		fmt.Println()
	}

	correct, answered := session.Score()
	fmt.Printf("Score: %d/%d\n", correct, answered)
}
