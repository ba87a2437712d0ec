package query

import "strings"

// Tokenize splits a Boolean query string into tokens: the exact
// uppercase strings AND/OR are operators, '(' and ')' are parens,
// and everything else is a term, lowercased to match index
// normalization. A term containing characters outside [a-z] simply
// will never match in the trie — it is not a lexical error.
func Tokenize(query string) []Token {
	query = strings.ReplaceAll(query, "(", " ( ")
	query = strings.ReplaceAll(query, ")", " ) ")

	fields := strings.Fields(query)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		switch f {
		case "(":
			tokens = append(tokens, Token{Kind: LParen})
		case ")":
			tokens = append(tokens, Token{Kind: RParen})
		case "AND":
			tokens = append(tokens, Token{Kind: And})
		case "OR":
			tokens = append(tokens, Token{Kind: Or})
		default:
			tokens = append(tokens, Token{Kind: Term, Text: strings.ToLower(f)})
		}
	}
	return tokens
}
