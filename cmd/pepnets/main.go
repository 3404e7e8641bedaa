package main

import (
	"fmt"
	"os"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "cluster":
		err = handleClusterCommand(os.Args[2:])
	case "network":
		err = handleNetworkCommand(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		printVersion()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	usage := `pepnets - cluster peptides by their position on the parent protein

Usage:
  pepnets <command> [options]

Available Commands:
  cluster     Build peptide graphs, cluster them and write the cluster tables
  network     Build peptide graphs only and save them as a snapshot
  help        Show this help message
  version     Show version information

Examples:
  # Cluster with defaults, resolving positions against a FASTA database
  pepnets cluster --records peptides.tsv --db uniprot.fasta --out results/

  # Deterministic clustering with settings from a file
  pepnets cluster --config run.yaml --algorithm deterministic --threshold 0.3 --records peptides.tsv

  # Save graphs once, cluster them later with different partitioners
  pepnets network --records peptides.tsv --db uniprot.fasta --snapshot graphs.pepnet
  pepnets cluster --snapshot-in graphs.pepnet --algorithm label_propagation

Use "pepnets <command> --help" for more information about a command.
`
	fmt.Print(usage)
}

func printVersion() {
	fmt.Printf("pepnets v%s\n", version)
}
