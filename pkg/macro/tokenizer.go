package macro

import (
	"regexp"
	"strings"
)

// TokenType represents the type of a lexed token
type TokenType int

const (
	TokenText TokenType = iota
	TokenContext
	TokenEnv
	TokenRand
	TokenCoin
	TokenDice
	TokenIP
	TokenWeather
	TokenEquality
	TokenInequality
	TokenShorthand
	TokenLiteral
	TokenNested
)

var tokenTypeNames = [...]string{
	TokenText:       "Text",
	TokenContext:    "Context",
	TokenEnv:        "Env",
	TokenRand:       "Rand",
	TokenCoin:       "Coin",
	TokenDice:       "Dice",
	TokenIP:         "IP",
	TokenWeather:    "Weather",
	TokenEquality:   "Equality",
	TokenInequality: "Inequality",
	TokenShorthand:  "Shorthand",
	TokenLiteral:    "Literal",
	TokenNested:     "Nested",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "Unknown"
}

// Token is one segment of a lexed text. Value holds the text exactly as
// written, delimiters included, so an unresolved token can be echoed back.
type Token struct {
	Type   TokenType
	Value  string
	Key    string  // context field, env key or conditional key
	Arg    string  // Rand range or conditional comparison value
	Output string  // conditional output text
	Parts  []Token // body of a TokenNested
}

const (
	openDelim  = "/{"
	closeDelim = '}'
)

var (
	randRangePattern  = regexp.MustCompile(`^Rand:([\d-]+)$`)
	equalityPattern   = regexp.MustCompile(`(?s)^(\w+)=([^=]+)=(.+)$`)
	inequalityPattern = regexp.MustCompile(`(?s)^(\w+)!=\s*([^=]+)=(.+)$`)
	shorthandPattern  = regexp.MustCompile(`(?s)^(\w+):(.+)$`)
)

// Tokenize splits input into text and placeholder tokens. A placeholder runs
// from "/{" to the first unmatched "}"; placeholders may nest, and an
// unterminated "/{" is kept as text.
func Tokenize(input string) []Token {
	logger := GetLogger()
	if logger.IsDebugMode() {
		logger.WithField("input_length", len(input)).Debug("Starting tokenization")
	}

	tokens, _, _ := lex(input, false)

	if logger.IsDebugMode() {
		logger.WithField("token_count", len(tokens)).Debug("Tokenization complete")
	}
	return tokens
}

// lex scans s. When nested it stops after the first unmatched closing brace
// and reports closed; it always returns the number of bytes consumed.
func lex(s string, nested bool) (tokens []Token, consumed int, closed bool) {
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Type: TokenText, Value: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if nested && s[i] == closeDelim {
			flush()
			return tokens, i + 1, true
		}
		if strings.HasPrefix(s[i:], openDelim) {
			start := i
			parts, n, ok := lex(s[i+len(openDelim):], true)
			if !ok {
				// Unterminated: everything from here on is plain text.
				text.WriteString(s[start:])
				i = len(s)
				break
			}
			end := i + len(openDelim) + n
			flush()
			tokens = append(tokens, placeholder(s[start:end], parts))
			i = end
			continue
		}
		text.WriteByte(s[i])
		i++
	}

	flush()
	return tokens, i, false
}

func placeholder(raw string, parts []Token) Token {
	switch {
	case len(parts) == 0:
		return Token{Type: TokenLiteral, Value: raw}
	case len(parts) == 1 && parts[0].Type == TokenText:
		return classify(parts[0].Value, raw)
	default:
		return Token{Type: TokenNested, Value: raw, Parts: parts}
	}
}

// classify applies the precedence table to a placeholder body. The order of
// the checks matters: every later grammar also accepts some bodies meant for
// an earlier one (Rand:1-10 is a valid shorthand body, for instance).
func classify(body, raw string) Token {
	if field, ok := contextTokens[strings.ToLower(body)]; ok {
		return Token{Type: TokenContext, Value: raw, Key: field}
	}

	if key, ok := canonicalEnvKey(body); ok {
		return Token{Type: TokenEnv, Value: raw, Key: key}
	}

	switch body {
	case "Rand":
		return Token{Type: TokenRand, Value: raw}
	case "Coin":
		return Token{Type: TokenCoin, Value: raw}
	case "Dice":
		return Token{Type: TokenDice, Value: raw}
	case "IP":
		return Token{Type: TokenIP, Value: raw}
	case "Weather":
		return Token{Type: TokenWeather, Value: raw}
	}
	if m := randRangePattern.FindStringSubmatch(body); m != nil {
		return Token{Type: TokenRand, Value: raw, Arg: m[1]}
	}

	if m := equalityPattern.FindStringSubmatch(body); m != nil {
		return Token{Type: TokenEquality, Value: raw, Key: m[1], Arg: m[2], Output: m[3]}
	}
	if m := inequalityPattern.FindStringSubmatch(body); m != nil {
		return Token{Type: TokenInequality, Value: raw, Key: m[1], Arg: m[2], Output: m[3]}
	}
	if m := shorthandPattern.FindStringSubmatch(body); m != nil {
		return Token{Type: TokenShorthand, Value: raw, Key: m[1], Output: m[2]}
	}

	return Token{Type: TokenLiteral, Value: raw}
}

// FindPlaceholders returns the raw text of every top-level placeholder in input.
func FindPlaceholders(input string) []string {
	found := []string{}
	for _, tok := range Tokenize(input) {
		if tok.Type != TokenText {
			found = append(found, tok.Value)
		}
	}
	return found
}
