package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromatic-ant/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List all available rules",
	Long:  `Shows the preset rules and any custom rules from ant.yaml.`,
	Run:   runRules,
}

func runRules(cmd *cobra.Command, args []string) {
	loadConfig()
	all := rules.List()

	fmt.Println("Available rules:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, r := range all {
		if len(r.Name) > maxNameLen {
			maxNameLen = len(r.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %s\n", maxNameLen, "Name", "Turns", "Description")
	fmt.Printf("  %-*s  %-7s  %s\n", maxNameLen, "----", "-----", "-----------")

	// Print rules
	for _, r := range all {
		fmt.Printf("  %-*s  %-7s  %s\n", maxNameLen, r.Name, r.SequenceString(), r.Description)
	}

	fmt.Println()
	fmt.Println("Run 'ant play --rule <name>' to start one; the first word is enough.")
}
