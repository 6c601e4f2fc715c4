package cmd

import (
	"github.com/huangsam/rvss/core"
	"github.com/spf13/cobra"
)

// calcCmd scores the vectors given on the command line.
var calcCmd = &cobra.Command{
	Use:   "calc <vector>...",
	Short: "Score one or more vectors.",
	Long: `Route each vector to its scoring system by prefix and compute the
Base, Temporal and Environmental scores together with a severity rating.

Vectors without a prefix are treated as CVSS v2. Invalid vectors are reported
in the output and never stop the other vectors from being scored.

Examples:
  # Score a CVSS v3.1 vector
  rvss calc CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H

  # Show the intermediate subscores
  rvss calc --explain 'RVSS:1.0/AV:AN/AC:L/PR:N/UI:N/Y:O/S:U/C:N/I:L/A:N/H:H'

  # Record the results for later export
  rvss calc --record --history-backend sqlite AV:N/AC:L/Au:N/C:C/I:C/A:C`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("calc", core.ExecuteCalc),
}

// parseCmd shows how a vector is understood.
var parseCmd = &cobra.Command{
	Use:   "parse <vector>",
	Short: "Show the resolved metrics and canonical form of a vector.",
	Long: `Parse a vector without scoring it. Every metric of the system is listed
with its resolved value and weight, and metrics left at their default are marked.

Examples:
  # Canonical form without defaults
  rvss parse '(AV:N/AC:L/Au:N/C:P/I:P/A:P)'

  # Canonical form including every default value
  rvss parse --full --prefix AV:N/AC:L/Au:N/C:P/I:P/A:P`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("parse", core.ExecuteParse),
}

// systemsCmd lists the registered systems.
var systemsCmd = &cobra.Command{
	Use:     "systems",
	Short:   "List the registered scoring systems.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("systems", core.ExecuteSystems),
}

// describeCmd prints the metric reference of one system.
var describeCmd = &cobra.Command{
	Use:   "describe <name|prefix>",
	Short: "Describe every metric and value of a scoring system.",
	Long: `Print the metric enumeration of a system: codes, groups, defaults and
the weight of every value.

Examples:
  rvss describe cvss31
  rvss describe RVSS:1.0 --markdown
  rvss describe dread --plugin dread.cue --output yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("describe", core.ExecuteDescribe),
}

// buildCmd prompts for every metric of a system.
var buildCmd = &cobra.Command{
	Use:   "build <name|prefix> [vector]",
	Short: "Build a vector interactively and score it.",
	Long: `Walk through every metric of a system and pick its value. Groups made only
of optional metrics are skipped unless confirmed. An optional starting vector
pre-selects the current values.

Examples:
  rvss build cvss31
  rvss build rvss1 'RVSS:1.0/AV:AN/AC:L/PR:N/UI:N/Y:O/S:U/C:N/I:L/A:N/H:H'`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("build", core.ExecuteBuild),
}

// batchCmd scores vector files.
var batchCmd = &cobra.Command{
	Use:   "batch <glob>...",
	Short: "Score every vector in the matched files.",
	Long: `Read vectors from files matched by glob patterns (** is supported), one
vector per line. Blank lines and lines starting with # are ignored.

Examples:
  # Score every .vec file below findings/
  rvss batch 'findings/**/*.vec' --limit 20

  # Export Prometheus metrics for the node_exporter textfile collector
  rvss batch 'findings/**/*.vec' --metrics-file /var/lib/node_exporter/rvss.prom`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("batch", core.ExecuteBatch),
}
