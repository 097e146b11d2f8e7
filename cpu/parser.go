package cpu

// SplitLines splits a token stream into lines, dropping the line breaks.
// Empty lines are kept.
func SplitLines(tokens []Token) (lines [][]Token) {
	line := []Token{}
	for _, token := range tokens {
		if token.Kind == TOKEN_LF {
			lines = append(lines, line)
			line = []Token{}
			continue
		}
		line = append(line, token)
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return
}

// SplitParams splits the operand tokens of a line on commas.
// Empty parameters are kept, so that 'SET A,' has two parameters.
// No tokens at all yields no parameters.
func SplitParams(tokens []Token) (params [][]Token) {
	if len(tokens) == 0 {
		return
	}
	param := []Token{}
	for _, token := range tokens {
		if token.Kind == TOKEN_COMMA {
			params = append(params, param)
			param = []Token{}
			continue
		}
		param = append(param, token)
	}
	params = append(params, param)
	return
}
