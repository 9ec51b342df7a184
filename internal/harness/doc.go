// Package harness runs query scenarios against a dictionary.
//
// A scenario pins down the observable behaviour of the query language:
// a word list, a sequence of queries and, for each query, the exact
// results or the error it must produce. Scenarios are the conformance
// suite behind `jisho test` and the golden tests of this package.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: voicing
//	description: "Voicing marks on shared variables"
//	language: en              # optional, message catalog for errors
//	time_limit_seconds: 5     # optional, per-query budget
//	dictionary:
//	  words: [かき, がき]  # or path: words.dic, encoding: shift_jis
//	cases:
//	  - query: 'Aき;A"き;|A|=1'
//	    expect: ["かき;がき"]
//	  - query: "?"
//	    limit: 10
//	    count: 0
//	  - query: "?{2}"
//	    error: { kind: syntax, context: "?{" }
//
// # Expectations
//
// A case states at least one of:
//
//   - expect: the exact, ordered result list
//   - contains: results that must appear in any order
//   - count: the number of results
//   - error: the error kind, and optionally its context and localized message
//
// Unknown fields are rejected when a scenario is loaded.
//
// # Golden Files
//
// RunWithGolden writes each case's results or rendered error to
// testdata/golden/<name>.golden so that changes in result order or
// error text show up as diffs.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/voicing.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range result.Errors {
//	    log.Println(msg)
//	}
package harness
