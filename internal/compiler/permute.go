package compiler

import (
	"slices"
	"strings"
)

// MaxAnagramBranches bounds the number of concrete strings an
// expression with anagram blocks may expand to (8! = 40320).
const MaxAnagramBranches = 40320

// Permutations returns every distinct permutation of the runes of s in
// lexicographic order. A string of n distinct runes yields n! entries;
// repeated runes yield the deduplicated count.
func Permutations(s string) []string {
	runes := []rune(s)
	tokens := make([]string, len(runes))
	for i, r := range runes {
		tokens[i] = string(r)
	}
	perms, _ := permuteTokens(tokens, -1)
	return perms
}

// permuteTokens generates the distinct orderings of tokens. When limit
// is non-negative generation stops after limit+1 results and ok is false.
func permuteTokens(tokens []string, limit int) (perms []string, ok bool) {
	cur := slices.Clone(tokens)
	slices.Sort(cur)
	for {
		perms = append(perms, strings.Join(cur, ""))
		if limit >= 0 && len(perms) > limit {
			return perms, false
		}
		if !nextPermutation(cur) {
			return perms, true
		}
	}
}

// nextPermutation rearranges s into the next lexicographic permutation
// and reports false when s was the last one.
func nextPermutation(s []string) bool {
	i := len(s) - 2
	for i >= 0 && s[i] >= s[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(s) - 1
	for s[j] <= s[i] {
		j--
	}
	s[i], s[j] = s[j], s[i]
	slices.Reverse(s[i+1:])
	return true
}

// anagramTokens splits a block body into permutable units. A shared
// variable keeps its voicing mark: `A"` moves as one token.
func anagramTokens(body string) []string {
	var tokens []string
	for i := 0; i < len(body); {
		r, size := decodeRune(body[i:])
		tok := body[i : i+size]
		i += size
		if r >= 'A' && r <= 'Z' {
			for i < len(body) && (body[i] == '"' || body[i] == '\'') {
				tok += body[i : i+1]
				i++
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
