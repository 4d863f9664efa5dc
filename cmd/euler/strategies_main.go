package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available weighting strategies",
		RunE:  runStrategies,
	}
}

func runStrategies(cmd *cobra.Command, args []string) error {
	_, eng, err := buildEngine(cmd, nil)
	if err != nil {
		return err
	}

	registry := eng.Strategies()
	active := registry.Active()

	fmt.Println("Available weighting strategies:")
	fmt.Println()
	for _, m := range registry.Methods() {
		info, err := registry.Describe(m)
		if err != nil {
			continue
		}
		marker := " "
		if m == active {
			marker = "*"
		}
		fmt.Printf("%s %-25s [%s, %s]\n", marker, m.String(), info.Category, info.Complexity)
		fmt.Printf("    %s\n", info.Description)
	}
	fmt.Println()
	fmt.Println("* = active strategy")
	return nil
}
